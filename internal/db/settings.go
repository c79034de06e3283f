package db

import (
	"database/sql"
	"time"
)

// Setting keys
const (
	SettingTheme = "theme"
)

// GetSetting returns the stored value for key. ok is false if it was never set.
func (db *DB) GetSetting(key string) (value string, ok bool, err error) {
	err = db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetSetting stores value under key, replacing any previous value
func (db *DB) SetSetting(key, value string) error {
	return db.SetSettings(map[string]string{key: value})
}

// SetSettings stores several values atomically
func (db *DB) SetSettings(values map[string]string) error {
	now := time.Now()
	return db.Transaction(func(tx *sql.Tx) error {
		for key, value := range values {
			_, err := tx.Exec(`
				INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
			`, key, value, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteSetting removes key. Deleting a missing key is not an error.
func (db *DB) DeleteSetting(key string) error {
	_, err := db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}
