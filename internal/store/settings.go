package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type settingsRepo struct {
	db *sql.DB
}

func (r *settingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (r *settingsRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}

// GetBool reads a boolean setting. Missing or unparsable values are false.
func GetBool(ctx context.Context, repo SettingsRepo, key string) (bool, error) {
	v, ok, err := repo.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	return v == "true", nil
}

// SetBool stores a boolean setting as "true" or "false".
func SetBool(ctx context.Context, repo SettingsRepo, key string, v bool) error {
	s := "false"
	if v {
		s = "true"
	}
	return repo.Set(ctx, key, s)
}
