package postgres

import (
	"errors"

	"github.com/julianstephens/heybuddy/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	if err := s.ensureOpen(); err != nil {
		return models.Settings{}, err
	}

	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if len(data) == 0 {
		return models.Settings{}, errors.New("settings not found")
	}

	settings, err := models.MapToSettings(data)
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}

	models.ApplyDefaultSettings(&settings)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range models.SettingsToMap(settings) {
		_, err := tx.Exec(`
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, value)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func defaultSettings() models.Settings {
	s := models.Settings{}
	models.ApplyDefaultSettings(&s)
	return s
}
