package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"workshop-system/internal/dto"
	"workshop-system/internal/entities"
	"workshop-system/pkg/constants"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/service"
)

func newAuthServiceForTest(userRepo *fakeUserRepo) (AuthServiceInterface, service.JWTService) {
	jwtSvc := service.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(userRepo, newFakeCacheRepo(), jwtSvc, zap.NewNop()), jwtSvc
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin_TokenCarriesUserRole(t *testing.T) {
	userRepo := newFakeUserRepo(entities.User{
		ID:           7,
		Email:        "yossi@evenderech.co.il",
		Name:         "יוסי לוי",
		Role:         constants.RoleInstructor,
		PasswordHash: mustHash(t, "secret123"),
	})
	svc, jwtSvc := newAuthServiceForTest(userRepo)

	res, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "yossi@evenderech.co.il",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	claims, err := jwtSvc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, constants.RoleInstructor.String(), claims.Role,
		"роль в токене должна совпадать с ролью пользователя")
	assert.False(t, claims.IsRefreshToken)
}

func TestLogin_WrongPasswordRejected(t *testing.T) {
	userRepo := newFakeUserRepo(entities.User{
		ID:           7,
		Email:        "yossi@evenderech.co.il",
		Role:         constants.RoleInstructor,
		PasswordHash: mustHash(t, "secret123"),
	})
	svc, _ := newAuthServiceForTest(userRepo)

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "yossi@evenderech.co.il",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

// Refresh перечитывает пользователя: смена роли после выдачи refresh-токена
// должна попасть в новый access-токен.
func TestRefresh_PicksUpChangedRole(t *testing.T) {
	userRepo := newFakeUserRepo(entities.User{
		ID:           3,
		Email:        "michal@evenderech.co.il",
		Role:         constants.RoleInstructor,
		PasswordHash: mustHash(t, "secret123"),
	})
	svc, jwtSvc := newAuthServiceForTest(userRepo)

	res, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "michal@evenderech.co.il",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, userRepo.UpdateUserRole(context.Background(), 3, constants.RoleAdmin.String()))

	refreshed, err := svc.Refresh(context.Background(), res.RefreshToken)
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin.String(), claims.Role)
}
