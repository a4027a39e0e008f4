package services

import (
	"context"

	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/entities"
	"workshop-system/internal/events"
	"workshop-system/internal/repositories"
	"workshop-system/pkg/constants"
	"workshop-system/pkg/eventbus"
	"workshop-system/pkg/types"
	"workshop-system/pkg/utils"
)

type ProcessServiceInterface interface {
	GetProcesses(ctx context.Context, filter types.Filter) ([]entities.Process, uint64, error)
	FindProcess(ctx context.Context, id uint64) (*entities.Process, error)
	CreateProcess(ctx context.Context, payload dto.CreateProcessDTO) (*entities.Process, error)
	UpdateProcess(ctx context.Context, id uint64, payload dto.UpdateProcessDTO) (*entities.Process, error)
	DeleteProcess(ctx context.Context, id uint64) error
}

type ProcessService struct {
	processRepo repositories.ProcessRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	bus         *eventbus.Bus
	logger      *zap.Logger
}

func NewProcessService(
	processRepo repositories.ProcessRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) ProcessServiceInterface {
	return &ProcessService{processRepo: processRepo, userRepo: userRepo, bus: bus, logger: logger}
}

func (s *ProcessService) GetProcesses(ctx context.Context, filter types.Filter) ([]entities.Process, uint64, error) {
	return s.processRepo.GetProcesses(ctx, filter)
}

func (s *ProcessService) FindProcess(ctx context.Context, id uint64) (*entities.Process, error) {
	return s.processRepo.FindProcess(ctx, id)
}

func (s *ProcessService) CreateProcess(ctx context.Context, payload dto.CreateProcessDTO) (*entities.Process, error) {
	process := entities.Process{
		Name:         payload.Name,
		Type:         payload.Type,
		Status:       constants.ProcessStatusActive,
		ClientName:   payload.ClientName,
		InstructorID: payload.InstructorID,
	}

	created, err := s.processRepo.CreateProcess(ctx, process)
	if err != nil {
		s.logger.Error("не удалось создать процесс", zap.Error(err))
		return nil, err
	}

	if created.InstructorID != nil {
		s.notifyAssigned(ctx, *created)
	}
	return created, nil
}

func (s *ProcessService) UpdateProcess(ctx context.Context, id uint64, payload dto.UpdateProcessDTO) (*entities.Process, error) {
	process, err := s.processRepo.FindProcess(ctx, id)
	if err != nil {
		return nil, err
	}

	prevInstructor := process.InstructorID

	if payload.Name != nil {
		process.Name = *payload.Name
	}
	if payload.Type != nil {
		process.Type = *payload.Type
	}
	if payload.Status != nil {
		process.Status = *payload.Status
	}
	if payload.ClientName != nil {
		process.ClientName = *payload.ClientName
	}
	if payload.InstructorID != nil {
		process.InstructorID = payload.InstructorID
	}

	if err := s.processRepo.UpdateProcess(ctx, *process); err != nil {
		return nil, err
	}

	newlyAssigned := process.InstructorID != nil &&
		(prevInstructor == nil || *prevInstructor != *process.InstructorID)
	if newlyAssigned {
		s.notifyAssigned(ctx, *process)
	}

	return process, nil
}

func (s *ProcessService) DeleteProcess(ctx context.Context, id uint64) error {
	return s.processRepo.DeleteProcess(ctx, id)
}

func (s *ProcessService) notifyAssigned(ctx context.Context, process entities.Process) {
	instructor, err := s.userRepo.FindUser(ctx, *process.InstructorID)
	if err != nil {
		s.logger.Warn("инструктор для уведомления не найден",
			zap.Uint64("instructorID", *process.InstructorID), zap.Error(err))
		return
	}

	var actor *entities.User
	if actorID, err := utils.GetUserIDFromCtx(ctx); err == nil {
		actor, _ = s.userRepo.FindUser(ctx, actorID)
	}

	s.bus.Publish(ctx, events.ProcessAssignedEvent{
		Process:    process,
		Instructor: *instructor,
		Actor:      actor,
	})
}
