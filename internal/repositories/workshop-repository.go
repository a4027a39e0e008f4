package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	db "workshop-system/internal/infrastructure/bd"

	"workshop-system/internal/entities"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/types"
)

const workshopTable = "workshops"

var workshopAllowedFilters = map[string]string{
	"process_id":    "w.process_id",
	"instructor_id": "w.instructor_id",
	"status":        "w.status",
	"client_name":   "w.client_name",
	"scheduled_at":  "w.scheduled_at",
	"title":         "w.title",
}

type WorkshopRepositoryInterface interface {
	GetWorkshops(ctx context.Context, filter types.Filter) ([]entities.Workshop, uint64, error)
	GetWorkshopsByPeriod(ctx context.Context, year int, month int) ([]entities.Workshop, error)
	FindWorkshop(ctx context.Context, id uint64) (*entities.Workshop, error)
	CreateWorkshop(ctx context.Context, q Querier, workshop entities.Workshop) (*entities.Workshop, error)
	UpdateWorkshop(ctx context.Context, workshop entities.Workshop) error
	UpdateWorkshopStatus(ctx context.Context, id uint64, status string) error
	UpdateChecklist(ctx context.Context, id uint64, checklist map[string]string) error
	DeleteWorkshop(ctx context.Context, q Querier, id uint64) error
	CountByStatus(ctx context.Context) (map[string]uint64, error)
}

type WorkshopRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewWorkshopRepository(storage *pgxpool.Pool, logger *zap.Logger) WorkshopRepositoryInterface {
	return &WorkshopRepository{storage: storage, logger: logger}
}

func (r *WorkshopRepository) q(q Querier) Querier {
	if q == nil {
		return r.storage
	}
	return q
}

const workshopSelectFields = `w.id, w.process_id, w.instructor_id, w.title, w.status, w.scheduled_at,
    w.location, w.participants, w.client_name, w.notes,
    w.hr_contact_name, w.hr_contact_phone, w.hr_contact_email,
    w.procurement_contact_name, w.procurement_contact_phone, w.procurement_contact_email,
    w.exercises, w.checklist, w.created_at, w.updated_at`

func scanWorkshop(row pgx.Row) (*entities.Workshop, error) {
	var w entities.Workshop
	var exercisesRaw, checklistRaw []byte

	err := row.Scan(
		&w.ID, &w.ProcessID, &w.InstructorID, &w.Title, &w.Status, &w.ScheduledAt,
		&w.Location, &w.Participants, &w.ClientName, &w.Notes,
		&w.HRContactName, &w.HRContactPhone, &w.HRContactEmail,
		&w.ProcurementContactName, &w.ProcurementContactPhone, &w.ProcurementContactEmail,
		&exercisesRaw, &checklistRaw, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if err := decodeWorkshopJSON(&w, exercisesRaw, checklistRaw); err != nil {
		return nil, err
	}
	return &w, nil
}

func decodeWorkshopJSON(w *entities.Workshop, exercisesRaw, checklistRaw []byte) error {
	w.Exercises = make([]entities.SelectedExercise, 0)
	if len(exercisesRaw) > 0 {
		if err := json.Unmarshal(exercisesRaw, &w.Exercises); err != nil {
			return fmt.Errorf("битый JSON в колонке exercises (workshop %d): %w", w.ID, err)
		}
	}
	w.Checklist = make(map[string]string)
	if len(checklistRaw) > 0 {
		if err := json.Unmarshal(checklistRaw, &w.Checklist); err != nil {
			return fmt.Errorf("битый JSON в колонке checklist (workshop %d): %w", w.ID, err)
		}
	}
	return nil
}

func (r *WorkshopRepository) GetWorkshops(ctx context.Context, filter types.Filter) ([]entities.Workshop, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(*)").From(workshopTable + " w")
	countBuilder = db.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, workshopAllowedFilters)
	if filter.Search != "" {
		countBuilder = countBuilder.Where(sq.Or{
			sq.ILike{"w.title": "%" + filter.Search + "%"},
			sq.ILike{"w.client_name": "%" + filter.Search + "%"},
		})
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	builder := psql.Select(workshopSelectFields, "u.name").
		From(workshopTable + " w").
		LeftJoin("users u ON u.id = w.instructor_id")

	builder = db.ApplyListParams(builder, filter, workshopAllowedFilters)
	if filter.Search != "" {
		builder = builder.Where(sq.Or{
			sq.ILike{"w.title": "%" + filter.Search + "%"},
			sq.ILike{"w.client_name": "%" + filter.Search + "%"},
		})
	}
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("w.scheduled_at DESC NULLS LAST, w.id DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	workshops := make([]entities.Workshop, 0)
	for rows.Next() {
		var w entities.Workshop
		var exercisesRaw, checklistRaw []byte
		var instructorName *string

		err := rows.Scan(
			&w.ID, &w.ProcessID, &w.InstructorID, &w.Title, &w.Status, &w.ScheduledAt,
			&w.Location, &w.Participants, &w.ClientName, &w.Notes,
			&w.HRContactName, &w.HRContactPhone, &w.HRContactEmail,
			&w.ProcurementContactName, &w.ProcurementContactPhone, &w.ProcurementContactEmail,
			&exercisesRaw, &checklistRaw, &w.CreatedAt, &w.UpdatedAt,
			&instructorName,
		)
		if err != nil {
			return nil, 0, err
		}
		if err := decodeWorkshopJSON(&w, exercisesRaw, checklistRaw); err != nil {
			return nil, 0, err
		}
		if w.InstructorID != nil && instructorName != nil {
			w.Instructor = &entities.User{ID: *w.InstructorID, Name: *instructorName}
		}
		workshops = append(workshops, w)
	}
	return workshops, total, rows.Err()
}

// GetWorkshopsByPeriod возвращает мастер-классы, запланированные на указанный
// месяц. Используется месячным отчётом.
func (r *WorkshopRepository) GetWorkshopsByPeriod(ctx context.Context, year int, month int) ([]entities.Workshop, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM %s w
        WHERE w.scheduled_at IS NOT NULL
          AND EXTRACT(YEAR FROM w.scheduled_at) = $1
          AND EXTRACT(MONTH FROM w.scheduled_at) = $2
        ORDER BY w.scheduled_at
    `, workshopSelectFields, workshopTable)

	rows, err := r.storage.Query(ctx, query, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workshops := make([]entities.Workshop, 0)
	for rows.Next() {
		var w entities.Workshop
		var exercisesRaw, checklistRaw []byte
		err := rows.Scan(
			&w.ID, &w.ProcessID, &w.InstructorID, &w.Title, &w.Status, &w.ScheduledAt,
			&w.Location, &w.Participants, &w.ClientName, &w.Notes,
			&w.HRContactName, &w.HRContactPhone, &w.HRContactEmail,
			&w.ProcurementContactName, &w.ProcurementContactPhone, &w.ProcurementContactEmail,
			&exercisesRaw, &checklistRaw, &w.CreatedAt, &w.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := decodeWorkshopJSON(&w, exercisesRaw, checklistRaw); err != nil {
			return nil, err
		}
		workshops = append(workshops, w)
	}
	return workshops, rows.Err()
}

func (r *WorkshopRepository) FindWorkshop(ctx context.Context, id uint64) (*entities.Workshop, error) {
	query := fmt.Sprintf("SELECT %s FROM %s w WHERE w.id = $1", workshopSelectFields, workshopTable)
	return scanWorkshop(r.storage.QueryRow(ctx, query, id))
}

func (r *WorkshopRepository) CreateWorkshop(ctx context.Context, q Querier, workshop entities.Workshop) (*entities.Workshop, error) {
	exercisesJSON, err := json.Marshal(workshop.Exercises)
	if err != nil {
		return nil, err
	}
	checklistJSON, err := json.Marshal(workshop.Checklist)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (process_id, instructor_id, title, status, scheduled_at, location,
            participants, client_name, notes,
            hr_contact_name, hr_contact_phone, hr_contact_email,
            procurement_contact_name, procurement_contact_phone, procurement_contact_email,
            exercises, checklist)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
        RETURNING id, created_at, updated_at
    `, workshopTable)

	created := workshop
	err = r.q(q).QueryRow(ctx, query,
		workshop.ProcessID, workshop.InstructorID, workshop.Title, workshop.Status,
		workshop.ScheduledAt, workshop.Location, workshop.Participants, workshop.ClientName, workshop.Notes,
		workshop.HRContactName, workshop.HRContactPhone, workshop.HRContactEmail,
		workshop.ProcurementContactName, workshop.ProcurementContactPhone, workshop.ProcurementContactEmail,
		exercisesJSON, checklistJSON,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *WorkshopRepository) UpdateWorkshop(ctx context.Context, workshop entities.Workshop) error {
	exercisesJSON, err := json.Marshal(workshop.Exercises)
	if err != nil {
		return err
	}
	checklistJSON, err := json.Marshal(workshop.Checklist)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
        UPDATE %s SET
            process_id = $1, instructor_id = $2, title = $3, status = $4, scheduled_at = $5,
            location = $6, participants = $7, client_name = $8, notes = $9,
            hr_contact_name = $10, hr_contact_phone = $11, hr_contact_email = $12,
            procurement_contact_name = $13, procurement_contact_phone = $14, procurement_contact_email = $15,
            exercises = $16, checklist = $17, updated_at = CURRENT_TIMESTAMP
        WHERE id = $18
    `, workshopTable)

	result, err := r.storage.Exec(ctx, query,
		workshop.ProcessID, workshop.InstructorID, workshop.Title, workshop.Status,
		workshop.ScheduledAt, workshop.Location, workshop.Participants, workshop.ClientName, workshop.Notes,
		workshop.HRContactName, workshop.HRContactPhone, workshop.HRContactEmail,
		workshop.ProcurementContactName, workshop.ProcurementContactPhone, workshop.ProcurementContactEmail,
		exercisesJSON, checklistJSON, workshop.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorkshopRepository) UpdateWorkshopStatus(ctx context.Context, id uint64, status string) error {
	query := fmt.Sprintf("UPDATE %s SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", workshopTable)

	result, err := r.storage.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorkshopRepository) UpdateChecklist(ctx context.Context, id uint64, checklist map[string]string) error {
	checklistJSON, err := json.Marshal(checklist)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("UPDATE %s SET checklist = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", workshopTable)

	result, err := r.storage.Exec(ctx, query, checklistJSON, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteWorkshop удаляет только строку мастер-класса. Каскад (снаряжение,
// журнал событий, итоги) выполняет сервис внутри одной транзакции.
func (r *WorkshopRepository) DeleteWorkshop(ctx context.Context, q Querier, id uint64) error {
	result, err := r.q(q).Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", workshopTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorkshopRepository) CountByStatus(ctx context.Context) (map[string]uint64, error) {
	query := fmt.Sprintf("SELECT status, COUNT(*) FROM %s GROUP BY status", workshopTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]uint64)
	for rows.Next() {
		var status string
		var count uint64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
