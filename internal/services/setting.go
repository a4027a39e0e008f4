package services

import (
	"context"

	"workshop-system/internal/entities"
	"workshop-system/internal/repositories"
)

type SettingServiceInterface interface {
	GetSettings(ctx context.Context) ([]entities.AppSetting, error)
	FindSetting(ctx context.Context, key string) (*entities.AppSetting, error)
	UpsertSetting(ctx context.Context, key string, value string) (*entities.AppSetting, error)
}

type SettingService struct {
	settingRepo repositories.SettingRepositoryInterface
}

func NewSettingService(settingRepo repositories.SettingRepositoryInterface) SettingServiceInterface {
	return &SettingService{settingRepo: settingRepo}
}

func (s *SettingService) GetSettings(ctx context.Context) ([]entities.AppSetting, error) {
	return s.settingRepo.GetSettings(ctx)
}

func (s *SettingService) FindSetting(ctx context.Context, key string) (*entities.AppSetting, error) {
	return s.settingRepo.FindSetting(ctx, key)
}

func (s *SettingService) UpsertSetting(ctx context.Context, key string, value string) (*entities.AppSetting, error) {
	return s.settingRepo.UpsertSetting(ctx, key, value)
}
