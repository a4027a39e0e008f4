package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/entities"
	"workshop-system/internal/repositories"
	apperrors "workshop-system/pkg/errors"
)

type NotificationPreferencesServiceInterface interface {
	GetForUser(ctx context.Context, userID uint64) (*entities.NotificationPreferences, error)
	UpdateForUser(ctx context.Context, userID uint64, payload dto.UpdateNotificationPreferencesDTO) (*entities.NotificationPreferences, error)
}

type NotificationPreferencesService struct {
	prefsRepo repositories.NotificationPreferencesRepositoryInterface
	logger    *zap.Logger
}

func NewNotificationPreferencesService(
	prefsRepo repositories.NotificationPreferencesRepositoryInterface,
	logger *zap.Logger,
) NotificationPreferencesServiceInterface {
	return &NotificationPreferencesService{prefsRepo: prefsRepo, logger: logger}
}

// GetForUser возвращает настройки пользователя. Если записи ещё нет
// (пользователь заведён до появления таблицы), отдаём значения по умолчанию.
func (s *NotificationPreferencesService) GetForUser(ctx context.Context, userID uint64) (*entities.NotificationPreferences, error) {
	prefs, err := s.prefsRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := entities.DefaultNotificationPreferences(userID)
			return &defaults, nil
		}
		return nil, err
	}
	return prefs, nil
}

// UpdateForUser меняет только переданные переключатели.
func (s *NotificationPreferencesService) UpdateForUser(ctx context.Context, userID uint64, payload dto.UpdateNotificationPreferencesDTO) (*entities.NotificationPreferences, error) {
	current, err := s.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&current.OnWorkshopCreated, payload.OnWorkshopCreated)
	apply(&current.OnWorkshopUpdated, payload.OnWorkshopUpdated)
	apply(&current.OnWorkshopCancelled, payload.OnWorkshopCancelled)
	apply(&current.OnEquipmentStatusChanged, payload.OnEquipmentStatusChanged)
	apply(&current.OnEquipmentReady, payload.OnEquipmentReady)
	apply(&current.OnMonthlyReportDue, payload.OnMonthlyReportDue)
	apply(&current.OnReportApproved, payload.OnReportApproved)
	apply(&current.OnProcessAssigned, payload.OnProcessAssigned)

	return s.prefsRepo.Upsert(ctx, *current)
}
