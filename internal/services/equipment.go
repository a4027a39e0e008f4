package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/entities"
	"workshop-system/internal/events"
	"workshop-system/internal/repositories"
	"workshop-system/pkg/constants"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/eventbus"
	"workshop-system/pkg/types"
	"workshop-system/pkg/utils"
)

type EquipmentServiceInterface interface {
	GetEquipmentList(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	GetEquipmentByWorkshop(ctx context.Context, workshopID uint64) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	AdvanceStatus(ctx context.Context, id uint64, notes *string) (*entities.Equipment, error)
	SetStatus(ctx context.Context, id uint64, status constants.EquipmentStatus, notes *string) (*entities.Equipment, error)
	BatchSetStatus(ctx context.Context, payload dto.BatchUpdateStatusDTO) ([]dto.BatchUpdateResultDTO, error)
	GetStatusEvents(ctx context.Context, equipmentID uint64) ([]entities.StatusEvent, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	workshopRepo  repositories.WorkshopRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	txManager     repositories.TxManagerInterface
	bus           *eventbus.Bus
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	workshopRepo repositories.WorkshopRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		workshopRepo:  workshopRepo,
		userRepo:      userRepo,
		txManager:     txManager,
		bus:           bus,
		logger:        logger,
	}
}

func (s *EquipmentService) GetEquipmentList(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	return s.equipmentRepo.GetEquipmentList(ctx, filter)
}

func (s *EquipmentService) GetEquipmentByWorkshop(ctx context.Context, workshopID uint64) ([]entities.Equipment, error) {
	if _, err := s.workshopRepo.FindWorkshop(ctx, workshopID); err != nil {
		return nil, err
	}
	return s.equipmentRepo.GetEquipmentByWorkshop(ctx, workshopID)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return s.equipmentRepo.FindEquipment(ctx, id)
}

// CreateEquipment добавляет единицу вручную, сверх заказанного при
// бронировании. Стартовый статус всегда ORDERED.
func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	if _, err := s.workshopRepo.FindWorkshop(ctx, payload.WorkshopID); err != nil {
		return nil, err
	}

	item := entities.Equipment{
		WorkshopID: payload.WorkshopID,
		Name:       payload.Name,
		Status:     constants.EquipmentStatusOrdered,
		AssignedTo: null.StringFromPtr(payload.AssignedTo),
		Notes:      null.StringFromPtr(payload.Notes),
	}

	created, err := s.equipmentRepo.CreateEquipment(ctx, nil, item)
	if err != nil {
		s.logger.Error("не удалось создать оборудование", zap.Error(err))
		return nil, err
	}
	return created, nil
}

// AdvanceStatus переводит единицу в следующий статус по таблице переходов.
// Из терминального статуса перехода нет.
func (s *EquipmentService) AdvanceStatus(ctx context.Context, id uint64, notes *string) (*entities.Equipment, error) {
	item, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	next, ok := item.Status.Next()
	if !ok {
		return nil, fmt.Errorf("%w: статус %q конечный", apperrors.ErrNoNextStatus, item.Status)
	}

	return s.changeStatus(ctx, item, next, notes, nil)
}

// SetStatus устанавливает статус напрямую, минуя таблицу переходов
// (исправление ошибок склада). Значение обязано входить в перечисление.
func (s *EquipmentService) SetStatus(ctx context.Context, id uint64, status constants.EquipmentStatus, notes *string) (*entities.Equipment, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, status)
	}

	item, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.Status == status {
		// Смены нет - запись в журнале не нужна.
		return item, nil
	}

	return s.changeStatus(ctx, item, status, notes, nil)
}

// BatchSetStatus обновляет статус списка единиц. Ошибка одного элемента не
// прерывает остальные: каждый id получает свой результат. События всех
// успешных переходов несут общий TxID, чтобы слушатель склеил их в одно
// уведомление.
func (s *EquipmentService) BatchSetStatus(ctx context.Context, payload dto.BatchUpdateStatusDTO) ([]dto.BatchUpdateResultDTO, error) {
	if len(payload.IDs) == 0 {
		return nil, fmt.Errorf("%w: пустой список ids", apperrors.ErrValidation)
	}

	status := constants.EquipmentStatus(payload.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, payload.Status)
	}

	txID := uuid.New()
	results := make([]dto.BatchUpdateResultDTO, 0, len(payload.IDs))

	for _, id := range payload.IDs {
		item, err := s.equipmentRepo.FindEquipment(ctx, id)
		if err != nil {
			results = append(results, dto.BatchUpdateResultDTO{ID: id, Error: err.Error()})
			continue
		}

		if item.Status == status {
			results = append(results, dto.BatchUpdateResultDTO{ID: id, Equipment: item})
			continue
		}

		updated, err := s.changeStatus(ctx, item, status, nil, &txID)
		if err != nil {
			s.logger.Warn("batch: элемент пропущен",
				zap.Uint64("equipmentID", id), zap.Error(err))
			results = append(results, dto.BatchUpdateResultDTO{ID: id, Error: err.Error()})
			continue
		}
		results = append(results, dto.BatchUpdateResultDTO{ID: id, Equipment: updated})
	}

	return results, nil
}

// changeStatus атомарно обновляет статус и дописывает журнал, затем публикует
// событие. Ошибка уведомления операцию не роняет: шина глотает её и пишет в лог.
func (s *EquipmentService) changeStatus(
	ctx context.Context,
	item *entities.Equipment,
	to constants.EquipmentStatus,
	notes *string,
	txID *uuid.UUID,
) (*entities.Equipment, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	from := item.Status

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.equipmentRepo.UpdateEquipmentStatus(ctx, tx, item.ID, to); err != nil {
			return err
		}
		_, err := s.equipmentRepo.AppendStatusEvent(ctx, tx, entities.StatusEvent{
			EquipmentID: item.ID,
			FromStatus:  from,
			ToStatus:    to,
			ChangedBy:   actorID,
			Notes:       null.StringFromPtr(notes),
			TxID:        txID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	updated := *item
	updated.Status = to
	updated.UpdatedAt = time.Now()

	s.publishStatusChanged(ctx, updated, from, to, actorID, txID)

	return &updated, nil
}

func (s *EquipmentService) publishStatusChanged(
	ctx context.Context,
	item entities.Equipment,
	from, to constants.EquipmentStatus,
	actorID uint64,
	txID *uuid.UUID,
) {
	workshop, err := s.workshopRepo.FindWorkshop(ctx, item.WorkshopID)
	if err != nil {
		s.logger.Warn("событие без мастер-класса: не нашли запись",
			zap.Uint64("workshopID", item.WorkshopID), zap.Error(err))
	}
	actor, err := s.userRepo.FindUser(ctx, actorID)
	if err != nil {
		s.logger.Warn("событие без автора: не нашли пользователя",
			zap.Uint64("userID", actorID), zap.Error(err))
	}

	s.bus.Publish(ctx, events.EquipmentStatusChangedEvent{
		Equipment:  item,
		Workshop:   workshop,
		FromStatus: from,
		ToStatus:   to,
		Actor:      actor,
		TxID:       txID,
		ChangedAt:  time.Now(),
	})
}

func (s *EquipmentService) GetStatusEvents(ctx context.Context, equipmentID uint64) ([]entities.StatusEvent, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}
	return s.equipmentRepo.GetStatusEvents(ctx, equipmentID)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	return s.equipmentRepo.DeleteEquipment(ctx, id)
}
