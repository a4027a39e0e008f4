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
	"workshop-system/pkg/constants"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/types"
)

const equipmentTable = "equipment"
const statusEventTable = "equipment_status_events"

var equipmentAllowedFilters = map[string]string{
	"workshop_id": "e.workshop_id",
	"status":      "e.status",
	"name":        "e.name",
	"assigned_to": "e.assigned_to",
}

type EquipmentRepositoryInterface interface {
	GetEquipmentList(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	GetEquipmentByWorkshop(ctx context.Context, workshopID uint64) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, q Querier, item entities.Equipment) (*entities.Equipment, error)
	UpdateEquipmentStatus(ctx context.Context, q Querier, id uint64, status constants.EquipmentStatus) error
	UpdateEquipment(ctx context.Context, item entities.Equipment) error
	DeleteEquipment(ctx context.Context, id uint64) error
	DeleteEquipmentByWorkshop(ctx context.Context, q Querier, workshopID uint64) error

	AppendStatusEvent(ctx context.Context, q Querier, event entities.StatusEvent) (*entities.StatusEvent, error)
	GetStatusEvents(ctx context.Context, equipmentID uint64) ([]entities.StatusEvent, error)
	CountByStatus(ctx context.Context) (map[string]uint64, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

// q выбирает исполнителя запроса: транзакция, если передана, иначе пул.
func (r *EquipmentRepository) q(q Querier) Querier {
	if q == nil {
		return r.storage
	}
	return q
}

const equipmentSelectFields = "e.id, e.workshop_id, e.name, e.status, e.assigned_to, e.notes, e.created_at, e.updated_at"

func scanEquipmentRow(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(&e.ID, &e.WorkshopID, &e.Name, &e.Status, &e.AssignedTo, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) GetEquipmentList(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(*)").From(equipmentTable + " e")
	countBuilder = db.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, equipmentAllowedFilters)

	if filter.Search != "" {
		countBuilder = countBuilder.Where(sq.ILike{"e.name": "%" + filter.Search + "%"})
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	builder := psql.Select(
		equipmentSelectFields,
		"w.title", "w.scheduled_at", "w.client_name",
	).
		From(equipmentTable + " e").
		LeftJoin("workshops w ON w.id = e.workshop_id")

	builder = db.ApplyListParams(builder, filter, equipmentAllowedFilters)

	if filter.Search != "" {
		builder = builder.Where(sq.ILike{"e.name": "%" + filter.Search + "%"})
	}
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("e.id DESC")
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

	items := make([]entities.Equipment, 0)
	for rows.Next() {
		var e entities.Equipment
		var w entities.Workshop
		err := rows.Scan(
			&e.ID, &e.WorkshopID, &e.Name, &e.Status, &e.AssignedTo, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
			&w.Title, &w.ScheduledAt, &w.ClientName,
		)
		if err != nil {
			return nil, 0, err
		}
		w.ID = e.WorkshopID
		e.Workshop = &w
		items = append(items, e)
	}
	return items, total, rows.Err()
}

func (r *EquipmentRepository) GetEquipmentByWorkshop(ctx context.Context, workshopID uint64) ([]entities.Equipment, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM %s e
        WHERE e.workshop_id = $1
        ORDER BY e.id
    `, equipmentSelectFields, equipmentTable)

	rows, err := r.storage.Query(ctx, query, workshopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entities.Equipment, 0)
	for rows.Next() {
		var e entities.Equipment
		if err := rows.Scan(&e.ID, &e.WorkshopID, &e.Name, &e.Status, &e.AssignedTo, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s e WHERE e.id = $1", equipmentSelectFields, equipmentTable)
	return scanEquipmentRow(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, q Querier, item entities.Equipment) (*entities.Equipment, error) {
	query := fmt.Sprintf(`
        INSERT INTO %s (workshop_id, name, status, assigned_to, notes)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, workshop_id, name, status, assigned_to, notes, created_at, updated_at
    `, equipmentTable)

	return scanEquipmentRow(r.q(q).QueryRow(ctx, query,
		item.WorkshopID, item.Name, item.Status, item.AssignedTo, item.Notes))
}

func (r *EquipmentRepository) UpdateEquipmentStatus(ctx context.Context, q Querier, id uint64, status constants.EquipmentStatus) error {
	query := fmt.Sprintf("UPDATE %s SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", equipmentTable)

	result, err := r.q(q).Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, item entities.Equipment) error {
	query := fmt.Sprintf(`
        UPDATE %s
        SET name = $1, assigned_to = $2, notes = $3, updated_at = CURRENT_TIMESTAMP
        WHERE id = $4
    `, equipmentTable)

	result, err := r.storage.Exec(ctx, query, item.Name, item.AssignedTo, item.Notes, item.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	if _, err := r.storage.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE equipment_id = $1", statusEventTable), id); err != nil {
		return err
	}

	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", equipmentTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEquipmentByWorkshop удаляет снаряжение мастер-класса вместе с журналом
// событий. Вызывается только внутри транзакции каскадного удаления.
func (r *EquipmentRepository) DeleteEquipmentByWorkshop(ctx context.Context, q Querier, workshopID uint64) error {
	query := fmt.Sprintf(`
        DELETE FROM %s WHERE equipment_id IN (SELECT id FROM %s WHERE workshop_id = $1)
    `, statusEventTable, equipmentTable)

	if _, err := r.q(q).Exec(ctx, query, workshopID); err != nil {
		return err
	}

	_, err := r.q(q).Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE workshop_id = $1", equipmentTable), workshopID)
	return err
}

func (r *EquipmentRepository) AppendStatusEvent(ctx context.Context, q Querier, event entities.StatusEvent) (*entities.StatusEvent, error) {
	query := fmt.Sprintf(`
        INSERT INTO %s (equipment_id, from_status, to_status, changed_by, notes, tx_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, equipment_id, from_status, to_status, changed_by, notes, tx_id, created_at
    `, statusEventTable)

	var e entities.StatusEvent
	err := r.q(q).QueryRow(ctx, query,
		event.EquipmentID, event.FromStatus, event.ToStatus, event.ChangedBy, event.Notes, event.TxID,
	).Scan(&e.ID, &e.EquipmentID, &e.FromStatus, &e.ToStatus, &e.ChangedBy, &e.Notes, &e.TxID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) CountByStatus(ctx context.Context) (map[string]uint64, error) {
	rows, err := r.storage.Query(ctx,
		fmt.Sprintf("SELECT status, COUNT(*) FROM %s GROUP BY status", equipmentTable))
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

func (r *EquipmentRepository) GetStatusEvents(ctx context.Context, equipmentID uint64) ([]entities.StatusEvent, error) {
	query := fmt.Sprintf(`
        SELECT ev.id, ev.equipment_id, ev.from_status, ev.to_status, ev.changed_by, ev.notes, ev.tx_id, ev.created_at,
               u.id, u.email, u.name, u.role
        FROM %s ev
        LEFT JOIN users u ON u.id = ev.changed_by
        WHERE ev.equipment_id = $1
        ORDER BY ev.created_at DESC, ev.id DESC
    `, statusEventTable)

	rows, err := r.storage.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]entities.StatusEvent, 0)
	for rows.Next() {
		var e entities.StatusEvent
		var uID *uint64
		var uEmail, uName, uRole *string
		err := rows.Scan(
			&e.ID, &e.EquipmentID, &e.FromStatus, &e.ToStatus, &e.ChangedBy, &e.Notes, &e.TxID, &e.CreatedAt,
			&uID, &uEmail, &uName, &uRole,
		)
		if err != nil {
			return nil, err
		}
		if uID != nil {
			e.ChangedByUser = &entities.User{ID: *uID, Email: *uEmail, Name: *uName, Role: constants.UserRole(*uRole)}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
