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

const notificationPreferencesTable = "notification_preferences"

type NotificationPreferencesRepositoryInterface interface {
	FindByUser(ctx context.Context, userID uint64) (*entities.NotificationPreferences, error)
	Upsert(ctx context.Context, prefs entities.NotificationPreferences) (*entities.NotificationPreferences, error)
}

type NotificationPreferencesRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewNotificationPreferencesRepository(storage *pgxpool.Pool, logger *zap.Logger) NotificationPreferencesRepositoryInterface {
	return &NotificationPreferencesRepository{storage: storage, logger: logger}
}

const prefsFields = `id, user_id,
    on_workshop_created, on_workshop_updated, on_workshop_cancelled,
    on_equipment_status_changed, on_equipment_ready,
    on_monthly_report_due, on_report_approved, on_process_assigned, updated_at`

func scanPrefs(row pgx.Row) (*entities.NotificationPreferences, error) {
	var p entities.NotificationPreferences
	err := row.Scan(&p.ID, &p.UserID,
		&p.OnWorkshopCreated, &p.OnWorkshopUpdated, &p.OnWorkshopCancelled,
		&p.OnEquipmentStatusChanged, &p.OnEquipmentReady,
		&p.OnMonthlyReportDue, &p.OnReportApproved, &p.OnProcessAssigned, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *NotificationPreferencesRepository) FindByUser(ctx context.Context, userID uint64) (*entities.NotificationPreferences, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE user_id = $1", prefsFields, notificationPreferencesTable)
	return scanPrefs(r.storage.QueryRow(ctx, query, userID))
}

func (r *NotificationPreferencesRepository) Upsert(ctx context.Context, prefs entities.NotificationPreferences) (*entities.NotificationPreferences, error) {
	query := fmt.Sprintf(`
        INSERT INTO %s (user_id,
            on_workshop_created, on_workshop_updated, on_workshop_cancelled,
            on_equipment_status_changed, on_equipment_ready,
            on_monthly_report_due, on_report_approved, on_process_assigned)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (user_id) DO UPDATE SET
            on_workshop_created = EXCLUDED.on_workshop_created,
            on_workshop_updated = EXCLUDED.on_workshop_updated,
            on_workshop_cancelled = EXCLUDED.on_workshop_cancelled,
            on_equipment_status_changed = EXCLUDED.on_equipment_status_changed,
            on_equipment_ready = EXCLUDED.on_equipment_ready,
            on_monthly_report_due = EXCLUDED.on_monthly_report_due,
            on_report_approved = EXCLUDED.on_report_approved,
            on_process_assigned = EXCLUDED.on_process_assigned,
            updated_at = CURRENT_TIMESTAMP
        RETURNING %s
    `, notificationPreferencesTable, prefsFields)

	return scanPrefs(r.storage.QueryRow(ctx, query, prefs.UserID,
		prefs.OnWorkshopCreated, prefs.OnWorkshopUpdated, prefs.OnWorkshopCancelled,
		prefs.OnEquipmentStatusChanged, prefs.OnEquipmentReady,
		prefs.OnMonthlyReportDue, prefs.OnReportApproved, prefs.OnProcessAssigned))
}
