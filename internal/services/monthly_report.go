package services

import (
	"context"

	"go.uber.org/zap"

	"workshop-system/internal/entities"
	"workshop-system/internal/events"
	"workshop-system/internal/repositories"
	"workshop-system/pkg/eventbus"
	"workshop-system/pkg/utils"
)

type MonthlyReportServiceInterface interface {
	GetReports(ctx context.Context, year int, month int) ([]entities.MonthlyReport, error)
	GenerateReports(ctx context.Context, year int, month int) ([]entities.MonthlyReport, error)
	ApproveReport(ctx context.Context, id uint64) (*entities.MonthlyReport, error)
	GetWorkshopRows(ctx context.Context, filter entities.ReportFilter) ([]entities.WorkshopReportRow, error)
}

type MonthlyReportService struct {
	reportRepo   repositories.MonthlyReportRepositoryInterface
	workshopRepo repositories.WorkshopRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
	bus          *eventbus.Bus
	logger       *zap.Logger
}

func NewMonthlyReportService(
	reportRepo repositories.MonthlyReportRepositoryInterface,
	workshopRepo repositories.WorkshopRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) MonthlyReportServiceInterface {
	return &MonthlyReportService{
		reportRepo:   reportRepo,
		workshopRepo: workshopRepo,
		userRepo:     userRepo,
		bus:          bus,
		logger:       logger,
	}
}

func (s *MonthlyReportService) GetReports(ctx context.Context, year int, month int) ([]entities.MonthlyReport, error) {
	return s.reportRepo.GetReports(ctx, year, month)
}

// GenerateReports пересчитывает месячные отчёты: считает мастер-классы
// каждого инструктора за период и делает upsert. Утверждённые отчёты
// пересчёт не трогает (upsert меняет только количество).
func (s *MonthlyReportService) GenerateReports(ctx context.Context, year int, month int) ([]entities.MonthlyReport, error) {
	workshops, err := s.workshopRepo.GetWorkshopsByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}

	counts := make(map[uint64]int)
	for _, w := range workshops {
		if w.InstructorID == nil {
			continue
		}
		counts[*w.InstructorID]++
	}

	for instructorID, count := range counts {
		_, err := s.reportRepo.UpsertReport(ctx, entities.MonthlyReport{
			InstructorID:   instructorID,
			Month:          month,
			Year:           year,
			WorkshopsCount: count,
		})
		if err != nil {
			s.logger.Error("не удалось пересчитать отчёт",
				zap.Uint64("instructorID", instructorID), zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("месячные отчёты пересчитаны",
		zap.Int("year", year), zap.Int("month", month), zap.Int("instructors", len(counts)))

	return s.reportRepo.GetReports(ctx, year, month)
}

func (s *MonthlyReportService) ApproveReport(ctx context.Context, id uint64) (*entities.MonthlyReport, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.reportRepo.ApproveReport(ctx, id, actorID); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.FindReport(ctx, id)
	if err != nil {
		return nil, err
	}

	instructor, err := s.userRepo.FindUser(ctx, report.InstructorID)
	if err == nil {
		var actor *entities.User
		actor, _ = s.userRepo.FindUser(ctx, actorID)
		s.bus.Publish(ctx, events.ReportApprovedEvent{
			Report:     *report,
			Instructor: *instructor,
			Actor:      actor,
		})
	}

	return report, nil
}

func (s *MonthlyReportService) GetWorkshopRows(ctx context.Context, filter entities.ReportFilter) ([]entities.WorkshopReportRow, error) {
	return s.reportRepo.GetWorkshopRows(ctx, filter)
}
