package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/repositories"
	"workshop-system/pkg/constants"
	"workshop-system/pkg/eventbus"
)

type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error)
	InvalidateStats(ctx context.Context)
	Register(bus *eventbus.Bus)
}

type DashboardService struct {
	processRepo   repositories.ProcessRepositoryInterface
	workshopRepo  repositories.WorkshopRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	cacheTTL      time.Duration
	logger        *zap.Logger
}

func NewDashboardService(
	processRepo repositories.ProcessRepositoryInterface,
	workshopRepo repositories.WorkshopRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		processRepo:   processRepo,
		workshopRepo:  workshopRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		cacheRepo:     cacheRepo,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

// GetStats собирает агрегаты для главной страницы. Результат живёт в Redis:
// недоступный кеш не ломает ответ, просто каждый запрос идёт в БД.
func (s *DashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	if cached, err := s.cacheRepo.Get(ctx, constants.CacheKeyDashboardStats); err == nil && cached != "" {
		var stats dto.DashboardStatsDTO
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
		s.logger.Warn("битый кеш дашборда, пересчитываем", zap.Error(err))
	}

	totalProcesses, activeProcesses, err := s.processRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	workshopCounts, err := s.workshopRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	var totalWorkshops uint64
	for _, c := range workshopCounts {
		totalWorkshops += c
	}

	equipmentCounts, err := s.equipmentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	equipmentByStatus := make(map[string]int, len(constants.EquipmentStatuses))
	var totalEquipment uint64
	for _, status := range constants.EquipmentStatuses {
		count := equipmentCounts[status.String()]
		equipmentByStatus[status.String()] = int(count)
		totalEquipment += count
	}

	instructors, err := s.userRepo.GetUsersByRoles(ctx, []string{constants.RoleInstructor.String()})
	if err != nil {
		return nil, err
	}

	stats := &dto.DashboardStatsDTO{
		TotalProcesses:    int(totalProcesses),
		ActiveProcesses:   int(activeProcesses),
		TotalWorkshops:    int(totalWorkshops),
		TotalEquipment:    int(totalEquipment),
		EquipmentByStatus: equipmentByStatus,
		TotalInstructors:  len(instructors),
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.cacheRepo.Set(ctx, constants.CacheKeyDashboardStats, payload, s.cacheTTL); err != nil {
			s.logger.Warn("не удалось закешировать статистику дашборда", zap.Error(err))
		}
	}

	return stats, nil
}

// InvalidateStats сбрасывает кеш после операций, меняющих агрегаты.
func (s *DashboardService) InvalidateStats(ctx context.Context) {
	if err := s.cacheRepo.Del(ctx, constants.CacheKeyDashboardStats); err != nil {
		s.logger.Warn("не удалось сбросить кеш дашборда", zap.Error(err))
	}
}

// Register подписывает сброс кеша на события, после которых агрегаты
// устаревают. Без этого дашборд отдавал бы старые цифры до истечения TTL.
func (s *DashboardService) Register(bus *eventbus.Bus) {
	invalidate := func(ctx context.Context, _ eventbus.Event) error {
		s.InvalidateStats(ctx)
		return nil
	}
	for _, topic := range []string{
		"workshop.created",
		"workshop.updated",
		"workshop.cancelled",
		"workshop.deleted",
		"equipment.status.changed",
	} {
		bus.Subscribe(topic, invalidate)
	}
}
