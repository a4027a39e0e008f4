package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"workshop-system/internal/entities"
	apperrors "workshop-system/pkg/errors"
)

const monthlyReportTable = "monthly_reports"

type MonthlyReportRepositoryInterface interface {
	GetReports(ctx context.Context, year int, month int) ([]entities.MonthlyReport, error)
	FindReport(ctx context.Context, id uint64) (*entities.MonthlyReport, error)
	FindReportByPeriod(ctx context.Context, instructorID uint64, year int, month int) (*entities.MonthlyReport, error)
	UpsertReport(ctx context.Context, report entities.MonthlyReport) (*entities.MonthlyReport, error)
	ApproveReport(ctx context.Context, id uint64, approvedBy uint64) error
	GetWorkshopRows(ctx context.Context, filter entities.ReportFilter) ([]entities.WorkshopReportRow, error)
}

type MonthlyReportRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMonthlyReportRepository(storage *pgxpool.Pool, logger *zap.Logger) MonthlyReportRepositoryInterface {
	return &MonthlyReportRepository{storage: storage, logger: logger}
}

const reportSelectFields = "r.id, r.instructor_id, r.month, r.year, r.workshops_count, r.approved, r.approved_by_id, r.created_at"

func scanReport(row pgx.Row) (*entities.MonthlyReport, error) {
	var rep entities.MonthlyReport
	err := row.Scan(&rep.ID, &rep.InstructorID, &rep.Month, &rep.Year,
		&rep.WorkshopsCount, &rep.Approved, &rep.ApprovedByID, &rep.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func (r *MonthlyReportRepository) GetReports(ctx context.Context, year int, month int) ([]entities.MonthlyReport, error) {
	query := fmt.Sprintf(`
        SELECT %s, u.name, u.email
        FROM %s r
        JOIN users u ON u.id = r.instructor_id
        WHERE r.year = $1 AND r.month = $2
        ORDER BY u.name
    `, reportSelectFields, monthlyReportTable)

	rows, err := r.storage.Query(ctx, query, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]entities.MonthlyReport, 0)
	for rows.Next() {
		var rep entities.MonthlyReport
		var name, email string
		err := rows.Scan(&rep.ID, &rep.InstructorID, &rep.Month, &rep.Year,
			&rep.WorkshopsCount, &rep.Approved, &rep.ApprovedByID, &rep.CreatedAt, &name, &email)
		if err != nil {
			return nil, err
		}
		rep.Instructor = &entities.User{ID: rep.InstructorID, Name: name, Email: email}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *MonthlyReportRepository) FindReport(ctx context.Context, id uint64) (*entities.MonthlyReport, error) {
	query := fmt.Sprintf("SELECT %s FROM %s r WHERE r.id = $1", reportSelectFields, monthlyReportTable)
	return scanReport(r.storage.QueryRow(ctx, query, id))
}

func (r *MonthlyReportRepository) FindReportByPeriod(ctx context.Context, instructorID uint64, year int, month int) (*entities.MonthlyReport, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM %s r
        WHERE r.instructor_id = $1 AND r.year = $2 AND r.month = $3
    `, reportSelectFields, monthlyReportTable)
	return scanReport(r.storage.QueryRow(ctx, query, instructorID, year, month))
}

// UpsertReport пересчитывает отчёт инструктора за период. Уникальность пары
// (instructor_id, год+месяц) обеспечивает индекс в БД.
func (r *MonthlyReportRepository) UpsertReport(ctx context.Context, report entities.MonthlyReport) (*entities.MonthlyReport, error) {
	query := fmt.Sprintf(`
        INSERT INTO %s (instructor_id, month, year, workshops_count)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (instructor_id, year, month)
        DO UPDATE SET workshops_count = EXCLUDED.workshops_count
        RETURNING id, instructor_id, month, year, workshops_count, approved, approved_by_id, created_at
    `, monthlyReportTable)

	return scanReport(r.storage.QueryRow(ctx, query,
		report.InstructorID, report.Month, report.Year, report.WorkshopsCount))
}

func (r *MonthlyReportRepository) ApproveReport(ctx context.Context, id uint64, approvedBy uint64) error {
	query := fmt.Sprintf(`
        UPDATE %s SET approved = TRUE, approved_by_id = $1 WHERE id = $2
    `, monthlyReportTable)

	result, err := r.storage.Exec(ctx, query, approvedBy, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetWorkshopRows - строки сводного отчёта: мастер-классы за период с именем
// инструктора. Нулевые значения фильтра означают "без ограничения".
func (r *MonthlyReportRepository) GetWorkshopRows(ctx context.Context, filter entities.ReportFilter) ([]entities.WorkshopReportRow, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := psql.Select(
		"w.id", "w.title", "w.scheduled_at",
		"COALESCE(w.location, '')", "COALESCE(w.participants, 0)",
		"w.status", "COALESCE(w.client_name, '')",
		"w.instructor_id", "COALESCE(u.name, '')", "w.created_at",
	).
		From("workshops w").
		LeftJoin("users u ON u.id = w.instructor_id")

	if filter.Year > 0 {
		builder = builder.Where("EXTRACT(YEAR FROM w.scheduled_at) = ?", filter.Year)
	}
	if filter.Month > 0 {
		builder = builder.Where("EXTRACT(MONTH FROM w.scheduled_at) = ?", filter.Month)
	}
	if filter.InstructorID > 0 {
		builder = builder.Where(sq.Eq{"w.instructor_id": filter.InstructorID})
	}
	builder = builder.OrderBy("w.scheduled_at NULLS LAST, w.id")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.WorkshopReportRow, 0)
	for rows.Next() {
		var row entities.WorkshopReportRow
		err := rows.Scan(
			&row.ID, &row.Title, &row.ScheduledAt, &row.Location, &row.Participants,
			&row.Status, &row.ClientName, &row.InstructorID, &row.InstructorName, &row.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
