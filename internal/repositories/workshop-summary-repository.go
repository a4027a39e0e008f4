package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"workshop-system/internal/entities"
	apperrors "workshop-system/pkg/errors"
)

const workshopSummaryTable = "workshop_summaries"

type WorkshopSummaryRepositoryInterface interface {
	FindByWorkshop(ctx context.Context, workshopID uint64) (*entities.WorkshopSummary, error)
	CreateSummary(ctx context.Context, summary entities.WorkshopSummary) (*entities.WorkshopSummary, error)
	DeleteByWorkshop(ctx context.Context, q Querier, workshopID uint64) error
}

type WorkshopSummaryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewWorkshopSummaryRepository(storage *pgxpool.Pool, logger *zap.Logger) WorkshopSummaryRepositoryInterface {
	return &WorkshopSummaryRepository{storage: storage, logger: logger}
}

func (r *WorkshopSummaryRepository) q(q Querier) Querier {
	if q == nil {
		return r.storage
	}
	return q
}

const summaryFields = "id, workshop_id, participants_count, safety_incident, safety_details, highlights, notes, created_at, updated_at"

func (r *WorkshopSummaryRepository) FindByWorkshop(ctx context.Context, workshopID uint64) (*entities.WorkshopSummary, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE workshop_id = $1", summaryFields, workshopSummaryTable)

	var s entities.WorkshopSummary
	err := r.storage.QueryRow(ctx, query, workshopID).Scan(
		&s.ID, &s.WorkshopID, &s.ParticipantsCount, &s.SafetyIncident,
		&s.SafetyDetails, &s.Highlights, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *WorkshopSummaryRepository) CreateSummary(ctx context.Context, summary entities.WorkshopSummary) (*entities.WorkshopSummary, error) {
	query := fmt.Sprintf(`
        INSERT INTO %s (workshop_id, participants_count, safety_incident, safety_details, highlights, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (workshop_id) DO UPDATE SET
            participants_count = EXCLUDED.participants_count,
            safety_incident = EXCLUDED.safety_incident,
            safety_details = EXCLUDED.safety_details,
            highlights = EXCLUDED.highlights,
            notes = EXCLUDED.notes,
            updated_at = CURRENT_TIMESTAMP
        RETURNING %s
    `, workshopSummaryTable, summaryFields)

	var s entities.WorkshopSummary
	err := r.storage.QueryRow(ctx, query,
		summary.WorkshopID, summary.ParticipantsCount, summary.SafetyIncident,
		summary.SafetyDetails, summary.Highlights, summary.Notes,
	).Scan(&s.ID, &s.WorkshopID, &s.ParticipantsCount, &s.SafetyIncident,
		&s.SafetyDetails, &s.Highlights, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *WorkshopSummaryRepository) DeleteByWorkshop(ctx context.Context, q Querier, workshopID uint64) error {
	_, err := r.q(q).Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE workshop_id = $1", workshopSummaryTable), workshopID)
	return err
}
