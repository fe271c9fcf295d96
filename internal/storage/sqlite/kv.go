package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/logger"
	"github.com/julianstephens/heybuddy/internal/models"
	"github.com/julianstephens/heybuddy/internal/storage"
)

var _ storage.MoodHistoryReader = (*Store)(nil)

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := s.ensureOpen(); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	if key == constants.KeyMoodEntries {
		if err := syncMoodHistory(ctx, tx, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// syncMoodHistory rewrites the mood_history mirror from the moodEntries value.
// A value that does not decode leaves the mirror untouched.
func syncMoodHistory(ctx context.Context, tx *sql.Tx, value string) error {
	var entries []models.MoodEntry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		logger.Warn("Skipping mood_history mirror, value is not a mood array", "error", err)
		return nil
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM mood_history"); err != nil {
		return fmt.Errorf("clearing mood_history: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT OR REPLACE INTO mood_history (date, emoji, intensity, note) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Date, e.Emoji, e.Intensity, e.Note); err != nil {
			return fmt.Errorf("mirroring mood %s: %w", e.Date, err)
		}
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (s *Store) GetAll(ctx context.Context) (map[string]string, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM kv")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, rows.Err()
}

// MoodHistory reads the mirrored mood rows ordered by date.
func (s *Store) MoodHistory(ctx context.Context) ([]models.MoodEntry, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT date, emoji, intensity, note FROM mood_history ORDER BY date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MoodEntry
	for rows.Next() {
		var e models.MoodEntry
		if err := rows.Scan(&e.Date, &e.Emoji, &e.Intensity, &e.Note); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
