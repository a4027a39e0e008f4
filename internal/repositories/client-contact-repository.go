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

const clientContactTable = "client_contacts"

var clientContactAllowedFilters = map[string]string{
	"client_name": "c.client_name",
	"name":        "c.name",
}

type ClientContactRepositoryInterface interface {
	GetContacts(ctx context.Context, filter types.Filter) ([]entities.ClientContact, uint64, error)
	FindContact(ctx context.Context, id uint64) (*entities.ClientContact, error)
	CreateContact(ctx context.Context, contact entities.ClientContact) (*entities.ClientContact, error)
	UpdateContact(ctx context.Context, contact entities.ClientContact) error
	DeleteContact(ctx context.Context, id uint64) error
}

type ClientContactRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewClientContactRepository(storage *pgxpool.Pool, logger *zap.Logger) ClientContactRepositoryInterface {
	return &ClientContactRepository{storage: storage, logger: logger}
}

const clientContactFields = "c.id, c.client_name, c.name, c.position, c.phone, c.email, c.notes, c.created_at, c.updated_at"

func (r *ClientContactRepository) GetContacts(ctx context.Context, filter types.Filter) ([]entities.ClientContact, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(*)").From(clientContactTable + " c")
	countBuilder = db.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, clientContactAllowedFilters)
	if filter.Search != "" {
		countBuilder = countBuilder.Where(sq.Or{
			sq.ILike{"c.name": "%" + filter.Search + "%"},
			sq.ILike{"c.client_name": "%" + filter.Search + "%"},
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

	builder := psql.Select(clientContactFields).From(clientContactTable + " c")
	builder = db.ApplyListParams(builder, filter, clientContactAllowedFilters)
	if filter.Search != "" {
		builder = builder.Where(sq.Or{
			sq.ILike{"c.name": "%" + filter.Search + "%"},
			sq.ILike{"c.client_name": "%" + filter.Search + "%"},
		})
	}
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("c.client_name, c.name")
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

	contacts := make([]entities.ClientContact, 0)
	for rows.Next() {
		var c entities.ClientContact
		err := rows.Scan(&c.ID, &c.ClientName, &c.Name, &c.Position, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}

func (r *ClientContactRepository) FindContact(ctx context.Context, id uint64) (*entities.ClientContact, error) {
	query := fmt.Sprintf("SELECT %s FROM %s c WHERE c.id = $1", clientContactFields, clientContactTable)

	var c entities.ClientContact
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.ClientName, &c.Name, &c.Position, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientContactRepository) CreateContact(ctx context.Context, contact entities.ClientContact) (*entities.ClientContact, error) {
	query := fmt.Sprintf(`
        INSERT INTO %s (client_name, name, position, phone, email, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at
    `, clientContactTable)

	created := contact
	err := r.storage.QueryRow(ctx, query,
		contact.ClientName, contact.Name, contact.Position, contact.Phone, contact.Email, contact.Notes,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ClientContactRepository) UpdateContact(ctx context.Context, contact entities.ClientContact) error {
	query := fmt.Sprintf(`
        UPDATE %s
        SET client_name = $1, name = $2, position = $3, phone = $4, email = $5, notes = $6,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $7
    `, clientContactTable)

	result, err := r.storage.Exec(ctx, query,
		contact.ClientName, contact.Name, contact.Position, contact.Phone, contact.Email, contact.Notes, contact.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ClientContactRepository) DeleteContact(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", clientContactTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
