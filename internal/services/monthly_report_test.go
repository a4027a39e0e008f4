package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"workshop-system/internal/entities"
	"workshop-system/internal/repositories"
	"workshop-system/pkg/constants"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/eventbus"
	"workshop-system/pkg/utils"
)

type fakeReportRepo struct {
	reports map[uint64]*entities.MonthlyReport
	nextID  uint64
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uint64]*entities.MonthlyReport)}
}

func (r *fakeReportRepo) GetReports(ctx context.Context, year int, month int) ([]entities.MonthlyReport, error) {
	out := make([]entities.MonthlyReport, 0)
	for _, rep := range r.reports {
		if rep.Year == year && rep.Month == month {
			out = append(out, *rep)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) FindReport(ctx context.Context, id uint64) (*entities.MonthlyReport, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *rep
	return &clone, nil
}

func (r *fakeReportRepo) FindReportByPeriod(ctx context.Context, instructorID uint64, year int, month int) (*entities.MonthlyReport, error) {
	for _, rep := range r.reports {
		if rep.InstructorID == instructorID && rep.Year == year && rep.Month == month {
			clone := *rep
			return &clone, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeReportRepo) UpsertReport(ctx context.Context, report entities.MonthlyReport) (*entities.MonthlyReport, error) {
	for _, existing := range r.reports {
		if existing.InstructorID == report.InstructorID && existing.Year == report.Year && existing.Month == report.Month {
			existing.WorkshopsCount = report.WorkshopsCount
			clone := *existing
			return &clone, nil
		}
	}
	r.nextID++
	report.ID = r.nextID
	r.reports[report.ID] = &report
	clone := report
	return &clone, nil
}

func (r *fakeReportRepo) ApproveReport(ctx context.Context, id uint64, approvedBy uint64) error {
	rep, ok := r.reports[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	rep.Approved = true
	rep.ApprovedByID = &approvedBy
	return nil
}

func (r *fakeReportRepo) GetWorkshopRows(ctx context.Context, filter entities.ReportFilter) ([]entities.WorkshopReportRow, error) {
	return nil, nil
}

var _ repositories.MonthlyReportRepositoryInterface = (*fakeReportRepo)(nil)

func scheduledWorkshop(id, instructorID uint64, at time.Time) *entities.Workshop {
	return &entities.Workshop{
		ID:           id,
		InstructorID: &instructorID,
		Title:        "סדנת גיבוש",
		Status:       constants.WorkshopStatusCompleted,
		ScheduledAt:  null.TimeFrom(at),
	}
}

func TestGenerateReports_CountsWorkshopsPerInstructor(t *testing.T) {
	workshopRepo := newFakeWorkshopRepo()
	june := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)

	workshopRepo.workshops[1] = scheduledWorkshop(1, 4, june)
	workshopRepo.workshops[2] = scheduledWorkshop(2, 4, june.AddDate(0, 0, 5))
	workshopRepo.workshops[3] = scheduledWorkshop(3, 5, june)
	// Другой месяц - в отчёт не попадает.
	workshopRepo.workshops[4] = scheduledWorkshop(4, 4, june.AddDate(0, 1, 0))
	// Без инструктора - пропускается.
	workshopRepo.workshops[5] = &entities.Workshop{ID: 5, Title: "ללא מנחה", ScheduledAt: null.TimeFrom(june)}

	reportRepo := newFakeReportRepo()
	svc := NewMonthlyReportService(reportRepo, workshopRepo, newFakeUserRepo(), eventbus.New(zap.NewNop()), zap.NewNop())

	reports, err := svc.GenerateReports(context.Background(), 2026, 6)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	byInstructor := make(map[uint64]int)
	for _, r := range reports {
		byInstructor[r.InstructorID] = r.WorkshopsCount
	}
	assert.Equal(t, 2, byInstructor[4])
	assert.Equal(t, 1, byInstructor[5])
}

func TestGenerateReports_RerunUpdatesExistingRow(t *testing.T) {
	workshopRepo := newFakeWorkshopRepo()
	june := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)
	workshopRepo.workshops[1] = scheduledWorkshop(1, 4, june)

	reportRepo := newFakeReportRepo()
	svc := NewMonthlyReportService(reportRepo, workshopRepo, newFakeUserRepo(), eventbus.New(zap.NewNop()), zap.NewNop())

	_, err := svc.GenerateReports(context.Background(), 2026, 6)
	require.NoError(t, err)

	workshopRepo.workshops[2] = scheduledWorkshop(2, 4, june.AddDate(0, 0, 3))
	reports, err := svc.GenerateReports(context.Background(), 2026, 6)
	require.NoError(t, err)

	require.Len(t, reports, 1, "повторный пересчёт не плодит дубликаты")
	assert.Equal(t, 2, reports[0].WorkshopsCount)
}

func TestApproveReport_SetsApproverFromContext(t *testing.T) {
	reportRepo := newFakeReportRepo()
	reportRepo.reports[1] = &entities.MonthlyReport{ID: 1, InstructorID: 4, Month: 6, Year: 2026, WorkshopsCount: 3}
	userRepo := newFakeUserRepo(
		entities.User{ID: 1, Name: "מנהל", Role: constants.RoleAdmin},
		entities.User{ID: 4, Email: "yossi@evenderech.co.il", Role: constants.RoleInstructor},
	)

	svc := NewMonthlyReportService(reportRepo, newFakeWorkshopRepo(), userRepo, eventbus.New(zap.NewNop()), zap.NewNop())
	ctx := utils.WithUserID(context.Background(), 1)

	report, err := svc.ApproveReport(ctx, 1)
	require.NoError(t, err)
	assert.True(t, report.Approved)
	require.NotNil(t, report.ApprovedByID)
	assert.Equal(t, uint64(1), *report.ApprovedByID)
}

func TestApproveReport_RequiresUserInContext(t *testing.T) {
	svc := NewMonthlyReportService(newFakeReportRepo(), newFakeWorkshopRepo(), newFakeUserRepo(), eventbus.New(zap.NewNop()), zap.NewNop())

	_, err := svc.ApproveReport(context.Background(), 1)
	assert.Error(t, err)
}
