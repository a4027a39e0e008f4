package repositories

import (
	"context"
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

const processTable = "processes"

var processAllowedFilters = map[string]string{
	"type":          "p.type",
	"status":        "p.status",
	"client_name":   "p.client_name",
	"instructor_id": "p.instructor_id",
}

type ProcessRepositoryInterface interface {
	GetProcesses(ctx context.Context, filter types.Filter) ([]entities.Process, uint64, error)
	FindProcess(ctx context.Context, id uint64) (*entities.Process, error)
	CreateProcess(ctx context.Context, process entities.Process) (*entities.Process, error)
	UpdateProcess(ctx context.Context, process entities.Process) error
	DeleteProcess(ctx context.Context, id uint64) error
	Counts(ctx context.Context) (total uint64, active uint64, err error)
}

type ProcessRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewProcessRepository(storage *pgxpool.Pool, logger *zap.Logger) ProcessRepositoryInterface {
	return &ProcessRepository{storage: storage, logger: logger}
}

const processSelectFields = "p.id, p.name, p.type, p.status, p.client_name, p.instructor_id, p.created_at, p.updated_at"

func (r *ProcessRepository) GetProcesses(ctx context.Context, filter types.Filter) ([]entities.Process, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(*)").From(processTable + " p")
	countBuilder = db.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, processAllowedFilters)
	if filter.Search != "" {
		countBuilder = countBuilder.Where(sq.Or{
			sq.ILike{"p.name": "%" + filter.Search + "%"},
			sq.ILike{"p.client_name": "%" + filter.Search + "%"},
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

	builder := psql.Select(processSelectFields, "u.name", "u.email").
		From(processTable + " p").
		LeftJoin("users u ON u.id = p.instructor_id")

	builder = db.ApplyListParams(builder, filter, processAllowedFilters)
	if filter.Search != "" {
		builder = builder.Where(sq.Or{
			sq.ILike{"p.name": "%" + filter.Search + "%"},
			sq.ILike{"p.client_name": "%" + filter.Search + "%"},
		})
	}
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("p.id DESC")
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

	processes := make([]entities.Process, 0)
	for rows.Next() {
		var p entities.Process
		var instructorName, instructorEmail *string
		err := rows.Scan(
			&p.ID, &p.Name, &p.Type, &p.Status, &p.ClientName, &p.InstructorID, &p.CreatedAt, &p.UpdatedAt,
			&instructorName, &instructorEmail,
		)
		if err != nil {
			return nil, 0, err
		}
		if p.InstructorID != nil && instructorName != nil {
			p.Instructor = &entities.User{ID: *p.InstructorID, Name: *instructorName, Email: *instructorEmail}
		}
		processes = append(processes, p)
	}
	return processes, total, rows.Err()
}

func (r *ProcessRepository) FindProcess(ctx context.Context, id uint64) (*entities.Process, error) {
	query := fmt.Sprintf("SELECT %s FROM %s p WHERE p.id = $1", processSelectFields, processTable)

	var p entities.Process
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Type, &p.Status, &p.ClientName, &p.InstructorID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProcessRepository) CreateProcess(ctx context.Context, process entities.Process) (*entities.Process, error) {
	query := fmt.Sprintf(`
        INSERT INTO %s (name, type, status, client_name, instructor_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at
    `, processTable)

	created := process
	err := r.storage.QueryRow(ctx, query,
		process.Name, process.Type, process.Status, process.ClientName, process.InstructorID,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ProcessRepository) UpdateProcess(ctx context.Context, process entities.Process) error {
	query := fmt.Sprintf(`
        UPDATE %s
        SET name = $1, type = $2, status = $3, client_name = $4, instructor_id = $5,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $6
    `, processTable)

	result, err := r.storage.Exec(ctx, query,
		process.Name, process.Type, process.Status, process.ClientName, process.InstructorID, process.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ProcessRepository) DeleteProcess(ctx context.Context, id uint64) error {
	// Мастер-классы процесса не удаляем, а отвязываем.
	if _, err := r.storage.Exec(ctx,
		"UPDATE workshops SET process_id = NULL WHERE process_id = $1", id); err != nil {
		return err
	}

	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", processTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ProcessRepository) Counts(ctx context.Context) (uint64, uint64, error) {
	var total, active uint64
	err := r.storage.QueryRow(ctx, fmt.Sprintf(
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'active') FROM %s", processTable,
	)).Scan(&total, &active)
	return total, active, err
}
