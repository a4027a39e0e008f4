package services

import (
	"context"
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"workshop-system/internal/catalog"
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

type WorkshopServiceInterface interface {
	GetWorkshops(ctx context.Context, filter types.Filter) ([]entities.Workshop, uint64, error)
	FindWorkshop(ctx context.Context, id uint64) (*entities.Workshop, error)
	CreateWorkshop(ctx context.Context, payload dto.CreateWorkshopDTO) (*entities.Workshop, error)
	UpdateWorkshop(ctx context.Context, id uint64, payload dto.UpdateWorkshopDTO) (*entities.Workshop, error)
	UpdateChecklist(ctx context.Context, id uint64, checklist map[string]string) error
	DeleteWorkshop(ctx context.Context, id uint64) error
	CreateSummary(ctx context.Context, workshopID uint64, payload dto.CreateWorkshopSummaryDTO) (*entities.WorkshopSummary, error)
	GetSummary(ctx context.Context, workshopID uint64) (*entities.WorkshopSummary, error)
}

type WorkshopService struct {
	workshopRepo  repositories.WorkshopRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	summaryRepo   repositories.WorkshopSummaryRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	catalog       *catalog.Catalog
	txManager     repositories.TxManagerInterface
	bus           *eventbus.Bus
	logger        *zap.Logger
}

func NewWorkshopService(
	workshopRepo repositories.WorkshopRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	summaryRepo repositories.WorkshopSummaryRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	cat *catalog.Catalog,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) WorkshopServiceInterface {
	return &WorkshopService{
		workshopRepo:  workshopRepo,
		equipmentRepo: equipmentRepo,
		summaryRepo:   summaryRepo,
		userRepo:      userRepo,
		catalog:       cat,
		txManager:     txManager,
		bus:           bus,
		logger:        logger,
	}
}

func (s *WorkshopService) GetWorkshops(ctx context.Context, filter types.Filter) ([]entities.Workshop, uint64, error) {
	return s.workshopRepo.GetWorkshops(ctx, filter)
}

func (s *WorkshopService) FindWorkshop(ctx context.Context, id uint64) (*entities.Workshop, error) {
	workshop, err := s.workshopRepo.FindWorkshop(ctx, id)
	if err != nil {
		return nil, err
	}
	if workshop.InstructorID != nil {
		if instructor, err := s.userRepo.FindUser(ctx, *workshop.InstructorID); err == nil {
			workshop.Instructor = instructor
		}
	}
	return workshop, nil
}

// CreateWorkshop бронирует мастер-класс. Для каждого выбранного упражнения
// считаем потребность в снаряжении по каталогу и материализуем её строками
// оборудования в статусе ORDERED - всё в одной транзакции: либо мастер-класс
// создан вместе со снаряжением, либо не создан вовсе.
func (s *WorkshopService) CreateWorkshop(ctx context.Context, payload dto.CreateWorkshopDTO) (*entities.Workshop, error) {
	if payload.Title == "" {
		return nil, apperrors.NewInvalidInputError("название мастер-класса обязательно")
	}

	// Потребность считаем до транзакции: ошибки каталога не должны
	// оставлять полунаписанных данных.
	equipmentNames := make([]string, 0)
	for _, sel := range payload.SelectedExercises {
		requirements, err := s.catalog.EquipmentForSelection(sel.ExerciseID, sel.SubActivityIDs)
		if err != nil {
			return nil, err
		}
		totals := catalog.GetTotalEquipment(requirements, sel.NumGroups)
		for _, t := range totals {
			name := t.Item
			if t.Total > 1 {
				name = fmt.Sprintf("%s (x%d)", t.Item, t.Total)
			}
			equipmentNames = append(equipmentNames, name)
		}
	}

	workshop := entities.Workshop{
		ProcessID:    payload.ProcessID,
		InstructorID: payload.InstructorID,
		Title:        payload.Title,
		Status:       constants.WorkshopStatusPlanned,
		ScheduledAt:  null.TimeFromPtr(payload.ScheduledAt),
		Location:     null.StringFromPtr(payload.Location),
		Participants: null.Int64FromPtr(payload.Participants),
		ClientName:   null.StringFromPtr(payload.ClientName),
		Notes:        null.StringFromPtr(payload.Notes),

		HRContactName:           null.StringFromPtr(payload.HRContactName),
		HRContactPhone:          null.StringFromPtr(payload.HRContactPhone),
		HRContactEmail:          null.StringFromPtr(payload.HRContactEmail),
		ProcurementContactName:  null.StringFromPtr(payload.ProcurementContactName),
		ProcurementContactPhone: null.StringFromPtr(payload.ProcurementContactPhone),
		ProcurementContactEmail: null.StringFromPtr(payload.ProcurementContactEmail),

		Exercises: make([]entities.SelectedExercise, 0, len(payload.SelectedExercises)),
		Checklist: payload.Checklist,
	}
	for _, sel := range payload.SelectedExercises {
		workshop.Exercises = append(workshop.Exercises, entities.SelectedExercise{
			ExerciseID:     sel.ExerciseID,
			SubActivityIDs: sel.SubActivityIDs,
			NumGroups:      sel.NumGroups,
			Notes:          sel.Notes,
		})
	}
	if workshop.Checklist == nil {
		workshop.Checklist = make(map[string]string)
	}

	var created *entities.Workshop
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = s.workshopRepo.CreateWorkshop(ctx, tx, workshop)
		if err != nil {
			return err
		}
		for _, name := range equipmentNames {
			_, err = s.equipmentRepo.CreateEquipment(ctx, tx, entities.Equipment{
				WorkshopID: created.ID,
				Name:       name,
				Status:     constants.EquipmentStatusOrdered,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("бронирование мастер-класса не удалось", zap.Error(err))
		return nil, err
	}

	s.logger.Info("мастер-класс забронирован",
		zap.Uint64("workshopID", created.ID),
		zap.Int("equipmentCount", len(equipmentNames)))

	s.bus.Publish(ctx, events.WorkshopCreatedEvent{
		Workshop:       *created,
		EquipmentCount: len(equipmentNames),
		Actor:          s.actorFromCtx(ctx),
	})

	return created, nil
}

func (s *WorkshopService) UpdateWorkshop(ctx context.Context, id uint64, payload dto.UpdateWorkshopDTO) (*entities.Workshop, error) {
	workshop, err := s.workshopRepo.FindWorkshop(ctx, id)
	if err != nil {
		return nil, err
	}

	wasCancelled := workshop.Status == constants.WorkshopStatusCancelled

	if payload.ProcessID != nil {
		workshop.ProcessID = payload.ProcessID
	}
	if payload.InstructorID != nil {
		workshop.InstructorID = payload.InstructorID
	}
	if payload.Title != nil {
		workshop.Title = *payload.Title
	}
	if payload.Status != nil {
		workshop.Status = *payload.Status
	}
	if payload.ScheduledAt != nil {
		workshop.ScheduledAt = null.TimeFromPtr(payload.ScheduledAt)
	}
	if payload.Location != nil {
		workshop.Location = null.StringFromPtr(payload.Location)
	}
	if payload.Participants != nil {
		workshop.Participants = null.Int64FromPtr(payload.Participants)
	}
	if payload.ClientName != nil {
		workshop.ClientName = null.StringFromPtr(payload.ClientName)
	}
	if payload.Notes != nil {
		workshop.Notes = null.StringFromPtr(payload.Notes)
	}
	if payload.HRContactName != nil {
		workshop.HRContactName = null.StringFromPtr(payload.HRContactName)
	}
	if payload.HRContactPhone != nil {
		workshop.HRContactPhone = null.StringFromPtr(payload.HRContactPhone)
	}
	if payload.HRContactEmail != nil {
		workshop.HRContactEmail = null.StringFromPtr(payload.HRContactEmail)
	}
	if payload.ProcurementContactName != nil {
		workshop.ProcurementContactName = null.StringFromPtr(payload.ProcurementContactName)
	}
	if payload.ProcurementContactPhone != nil {
		workshop.ProcurementContactPhone = null.StringFromPtr(payload.ProcurementContactPhone)
	}
	if payload.ProcurementContactEmail != nil {
		workshop.ProcurementContactEmail = null.StringFromPtr(payload.ProcurementContactEmail)
	}
	if payload.Checklist != nil {
		workshop.Checklist = payload.Checklist
	}

	if err := s.workshopRepo.UpdateWorkshop(ctx, *workshop); err != nil {
		return nil, err
	}

	actor := s.actorFromCtx(ctx)
	if !wasCancelled && workshop.Status == constants.WorkshopStatusCancelled {
		s.bus.Publish(ctx, events.WorkshopCancelledEvent{Workshop: *workshop, Actor: actor})
	} else {
		s.bus.Publish(ctx, events.WorkshopUpdatedEvent{Workshop: *workshop, Actor: actor})
	}

	return workshop, nil
}

func (s *WorkshopService) UpdateChecklist(ctx context.Context, id uint64, checklist map[string]string) error {
	if checklist == nil {
		checklist = make(map[string]string)
	}
	return s.workshopRepo.UpdateChecklist(ctx, id, checklist)
}

// DeleteWorkshop удаляет мастер-класс каскадом: итоги, журнал статусов,
// снаряжение, затем сама запись - одной транзакцией.
func (s *WorkshopService) DeleteWorkshop(ctx context.Context, id uint64) error {
	if _, err := s.workshopRepo.FindWorkshop(ctx, id); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.summaryRepo.DeleteByWorkshop(ctx, tx, id); err != nil {
			return err
		}
		if err := s.equipmentRepo.DeleteEquipmentByWorkshop(ctx, tx, id); err != nil {
			return err
		}
		return s.workshopRepo.DeleteWorkshop(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, events.WorkshopDeletedEvent{WorkshopID: id})
	return nil
}

// CreateSummary сохраняет итоговый отчёт инструктора и переводит
// мастер-класс в completed.
func (s *WorkshopService) CreateSummary(ctx context.Context, workshopID uint64, payload dto.CreateWorkshopSummaryDTO) (*entities.WorkshopSummary, error) {
	if _, err := s.workshopRepo.FindWorkshop(ctx, workshopID); err != nil {
		return nil, err
	}

	summary, err := s.summaryRepo.CreateSummary(ctx, entities.WorkshopSummary{
		WorkshopID:        workshopID,
		ParticipantsCount: payload.ParticipantsCount,
		SafetyIncident:    payload.SafetyIncident,
		SafetyDetails:     null.StringFromPtr(payload.SafetyDetails),
		Highlights:        null.StringFromPtr(payload.Highlights),
		Notes:             null.StringFromPtr(payload.Notes),
	})
	if err != nil {
		return nil, err
	}

	if err := s.workshopRepo.UpdateWorkshopStatus(ctx, workshopID, constants.WorkshopStatusCompleted); err != nil {
		s.logger.Warn("итог сохранён, но статус не обновился",
			zap.Uint64("workshopID", workshopID), zap.Error(err))
	}

	return summary, nil
}

func (s *WorkshopService) GetSummary(ctx context.Context, workshopID uint64) (*entities.WorkshopSummary, error) {
	return s.summaryRepo.FindByWorkshop(ctx, workshopID)
}

func (s *WorkshopService) actorFromCtx(ctx context.Context) *entities.User {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil
	}
	actor, err := s.userRepo.FindUser(ctx, actorID)
	if err != nil {
		return nil
	}
	return actor
}
