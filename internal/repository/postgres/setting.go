package postgres

import (
	"context"
	"database/sql"
	"errors"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/repository"
)

type settingRepository struct {
	db *sql.DB
}

func NewSettingRepository(db *sql.DB) repository.SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	query := `SELECT value FROM platform_settings WHERE key = $1`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	return value, err
}
