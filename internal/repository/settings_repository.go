package repository

import (
	"context"

	apperrors "booth-pos-backend/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Settings keys understood by the auth service.
const (
	SettingAdminPassword  = "admin_password"
	SettingVendorPassword = "vendor_password"
)

type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type SettingsRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &SettingsRepositoryImpl{
		pool: pool,
	}
}

func (r *SettingsRepositoryImpl) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM settings WHERE key = $1`

	var value string
	err := r.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", apperrors.ErrInvalidInput
		}
		return "", err
	}

	return value, nil
}

func (r *SettingsRepositoryImpl) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`

	_, err := r.pool.Exec(ctx, query, key, value)
	return err
}
