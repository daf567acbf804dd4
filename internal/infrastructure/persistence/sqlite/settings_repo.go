package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/feedwall/internal/application/port"
	"github.com/bnema/feedwall/internal/logging"
)

const (
	getSettingQuery    = `SELECT value FROM settings WHERE key = ?`
	listSettingsQuery  = `SELECT key, value, CAST(strftime('%s', updated_at) AS INTEGER) FROM settings ORDER BY key`
	deleteSettingQuery = `DELETE FROM settings WHERE key = ?`
	upsertSettingQuery = `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// StoredSetting is one row of the settings table.
type StoredSetting struct {
	Key       string
	Value     json.RawMessage
	UpdatedAt time.Time
}

// SettingsRepository is the SQLite-backed port.SettingsStore.
type SettingsRepository struct {
	provider port.Database
}

var _ port.SettingsStore = (*SettingsRepository)(nil)

// NewSettingsRepository creates a repository over provider.
func NewSettingsRepository(provider port.Database) *SettingsRepository {
	return &SettingsRepository{provider: provider}
}

// Get returns the raw JSON value, or (nil, nil) when key is absent.
func (r *SettingsRepository) Get(ctx context.Context, key string) ([]byte, error) {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var value string
	err = db.QueryRowContext(ctx, getSettingQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return []byte(value), nil
}

// Set JSON-encodes value and stores it under key.
func (r *SettingsRepository) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %q: %w", key, err)
	}
	return r.SetRaw(ctx, key, data)
}

// SetRaw stores already encoded JSON under key.
func (r *SettingsRepository) SetRaw(ctx context.Context, key string, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("setting %q is not valid JSON", key)
	}
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().Str("key", key).Int("bytes", len(data)).Msg("writing setting")
	if _, err := db.ExecContext(ctx, upsertSettingQuery, key, string(data)); err != nil {
		return fmt.Errorf("failed to write setting %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *SettingsRepository) Delete(ctx context.Context, key string) error {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, deleteSettingQuery, key); err != nil {
		return fmt.Errorf("failed to delete setting %q: %w", key, err)
	}
	return nil
}

// List returns every stored setting ordered by key.
func (r *SettingsRepository) List(ctx context.Context) ([]StoredSetting, error) {
	db, err := r.provider.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, listSettingsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var out []StoredSetting
	for rows.Next() {
		var (
			s       StoredSetting
			value   string
			updated int64
		)
		if err := rows.Scan(&s.Key, &value, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		s.Value = json.RawMessage(value)
		s.UpdatedAt = time.Unix(updated, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}
