package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kova98/replydraft.api/data"
)

// settingsRowID is the fixed id of the single settings row.
const settingsRowID = 1

type SettingsRepo struct {
	db *sqlx.DB
}

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo {
	return &SettingsRepo{db}
}

// GetSettings returns the stored settings document, or nil when none has
// been saved yet.
func (r *SettingsRepo) GetSettings() (*data.Settings, error) {
	var settings data.Settings
	query := "SELECT id, data, updated_at FROM settings WHERE id = $1"

	err := r.db.Get(&settings, query, settingsRowID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

// SaveSettings writes the full settings document. Last write wins; callers
// merge before saving.
func (r *SettingsRepo) SaveSettings(raw []byte) error {
	query := `
		INSERT INTO settings (id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

	_, err := r.db.Exec(query, settingsRowID, raw)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
