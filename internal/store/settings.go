package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/ayusman/mudra/internal/control"
)

// controlConfigKey is the settings key holding the serialized control config.
const controlConfigKey = "control.config"

// SettingsRepository provides access to application settings stored as
// key-value pairs.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves a setting value by key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores a setting value, replacing any existing value for the key.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// GetInt retrieves an integer setting, returning def when the key is missing.
func (r *SettingsRepository) GetInt(key string, def int) (int, error) {
	value, err := r.Get(key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

// GetFloat retrieves a float setting, returning def when the key is missing.
func (r *SettingsRepository) GetFloat(key string, def float64) (float64, error) {
	value, err := r.Get(key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(value, 64)
}

// GetBool retrieves a boolean setting, returning def when the key is missing.
func (r *SettingsRepository) GetBool(key string, def bool) (bool, error) {
	value, err := r.Get(key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(value)
}

// All retrieves all settings as a map.
func (r *SettingsRepository) All() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

// LoadControlConfig returns the stored control configuration, or the
// defaults when none has been saved yet. A stored config that fails
// validation is returned with the error so the caller can decide whether
// to fall back.
func (r *SettingsRepository) LoadControlConfig() (control.Config, error) {
	cfg := control.DefaultConfig()

	value, err := r.Get(controlConfigKey)
	if errors.Is(err, ErrNotFound) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := json.Unmarshal([]byte(value), &cfg); err != nil {
		return control.DefaultConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// SaveControlConfig validates and persists the control configuration.
func (r *SettingsRepository) SaveControlConfig(cfg control.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return r.Set(controlConfigKey, string(data))
}
