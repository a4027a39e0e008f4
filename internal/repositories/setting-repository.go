package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workshop-system/internal/entities"
	apperrors "workshop-system/pkg/errors"
)

const settingTable = "app_settings"

type SettingRepositoryInterface interface {
	GetSettings(ctx context.Context) ([]entities.AppSetting, error)
	FindSetting(ctx context.Context, key string) (*entities.AppSetting, error)
	UpsertSetting(ctx context.Context, key string, value string) (*entities.AppSetting, error)
}

type SettingRepository struct {
	storage *pgxpool.Pool
}

func NewSettingRepository(storage *pgxpool.Pool) SettingRepositoryInterface {
	return &SettingRepository{storage: storage}
}

func (r *SettingRepository) GetSettings(ctx context.Context) ([]entities.AppSetting, error) {
	rows, err := r.storage.Query(ctx,
		fmt.Sprintf("SELECT key, value, updated_at FROM %s ORDER BY key", settingTable))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make([]entities.AppSetting, 0)
	for rows.Next() {
		var s entities.AppSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *SettingRepository) FindSetting(ctx context.Context, key string) (*entities.AppSetting, error) {
	var s entities.AppSetting
	err := r.storage.QueryRow(ctx,
		fmt.Sprintf("SELECT key, value, updated_at FROM %s WHERE key = $1", settingTable), key,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SettingRepository) UpsertSetting(ctx context.Context, key string, value string) (*entities.AppSetting, error) {
	query := fmt.Sprintf(`
        INSERT INTO %s (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP
        RETURNING key, value, updated_at
    `, settingTable)

	var s entities.AppSetting
	if err := r.storage.QueryRow(ctx, query, key, value).Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
