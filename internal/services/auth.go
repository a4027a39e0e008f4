package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"workshop-system/internal/dto"
	"workshop-system/internal/repositories"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/service"
)

const (
	maxLoginAttempts  = 5
	loginAttemptsTTL  = 15 * time.Minute
	loginAttemptsKeyF = "login:attempts:%s"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponseDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login сверяет пароль и выдаёт пару токенов. Счётчик неудачных попыток
// живёт в Redis: после пятой подряд вход блокируется до истечения TTL.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	attemptsKey := fmt.Sprintf(loginAttemptsKeyF, payload.Email)

	if err := s.checkLoginAttempts(ctx, attemptsKey); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.registerFailedAttempt(ctx, attemptsKey)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		s.registerFailedAttempt(ctx, attemptsKey)
		s.logger.Warn("неудачная попытка входа", zap.String("email", payload.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.cacheRepo.Del(ctx, attemptsKey); err != nil {
		s.logger.Warn("не удалось сбросить счётчик попыток", zap.Error(err))
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role.String())
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrInvalidToken
	}

	// Роль могла смениться после выдачи токена - перечитываем пользователя.
	user, err := s.userRepo.FindUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	accessToken, newRefreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role.String())
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         user,
	}, nil
}

func (s *AuthService) checkLoginAttempts(ctx context.Context, key string) error {
	val, err := s.cacheRepo.Get(ctx, key)
	if err != nil {
		// Отсутствие ключа или недоступный Redis вход не блокируют.
		return nil
	}

	var attempts int
	if _, err := fmt.Sscanf(val, "%d", &attempts); err != nil {
		return nil
	}
	if attempts >= maxLoginAttempts {
		return apperrors.NewHttpError(429, "слишком много неудачных попыток входа, попробуйте позже", nil, nil)
	}
	return nil
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, key string) {
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("не удалось увеличить счётчик попыток", zap.Error(err))
		return
	}
	if attempts == 1 {
		if err := s.cacheRepo.Set(ctx, key, attempts, loginAttemptsTTL); err != nil {
			s.logger.Warn("не удалось выставить TTL счётчика попыток", zap.Error(err))
		}
	}
}
