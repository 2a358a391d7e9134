package repositories

import (
	"database/sql"
	"fmt"

	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

// SettingRepository persists opaque key to blob values. The surface
// currently stores one key (the app cover image) but the store is
// open-ended by design.
type SettingRepository struct {
	store *Store
}

// Put upserts a setting value under the given key.
func (r *SettingRepository) Put(key string, value []byte) error {
	db, err := r.store.ensureOpen()
	if err != nil {
		return err
	}

	if key == "" {
		return fmt.Errorf("%w: setting key is required", shared.ErrInvalidInput)
	}

	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`

	if _, err := db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}

	return nil
}

// Get retrieves a setting value by key.
func (r *SettingRepository) Get(key string) ([]byte, error) {
	db, err := r.store.ensureOpen()
	if err != nil {
		return nil, err
	}

	var value []byte
	err = db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: setting %s", shared.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query setting %s: %w", key, err)
	}

	return value, nil
}

// Delete removes a setting by key. Deleting a missing key is not an error.
func (r *SettingRepository) Delete(key string) error {
	db, err := r.store.ensureOpen()
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}

	return nil
}
