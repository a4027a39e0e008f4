package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"workshop-system/internal/dto"
	"workshop-system/internal/entities"
	"workshop-system/internal/repositories"
	"workshop-system/pkg/constants"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context) ([]entities.User, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error)
	UpdateUserRole(ctx context.Context, id uint64, role string) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserService struct {
	userRepo  repositories.UserRepositoryInterface
	prefsRepo repositories.NotificationPreferencesRepositoryInterface
	logger    *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	prefsRepo repositories.NotificationPreferencesRepositoryInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{userRepo: userRepo, prefsRepo: prefsRepo, logger: logger}
}

func (s *UserService) GetUsers(ctx context.Context) ([]entities.User, error) {
	return s.userRepo.GetUsers(ctx)
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	return s.userRepo.FindUser(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, entities.User{
		Email:        payload.Email,
		Name:         payload.Name,
		Role:         constants.UserRole(payload.Role),
		PasswordHash: string(hash),
	})
	if err != nil {
		s.logger.Error("не удалось создать пользователя", zap.Error(err))
		return nil, err
	}

	// Настройки уведомлений заводим сразу, со всеми включёнными темами.
	if _, err := s.prefsRepo.Upsert(ctx, entities.DefaultNotificationPreferences(user.ID)); err != nil {
		s.logger.Warn("пользователь создан без настроек уведомлений",
			zap.Uint64("userID", user.ID), zap.Error(err))
	}

	return user, nil
}

func (s *UserService) UpdateUserRole(ctx context.Context, id uint64, role string) error {
	return s.userRepo.UpdateUserRole(ctx, id, role)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	return s.userRepo.DeleteUser(ctx, id)
}
