package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/heybuddy/internal/models"
)

var (
	// ErrNotFound is returned by Get when a key has never been written
	ErrNotFound = errors.New("key not found")
	// ErrNotInitialized is returned when a backend is used before Init or Load
	ErrNotInitialized = errors.New("storage not initialized, run 'heybuddy init' first")
)

// Provider is the key-value persistence boundary of the wellness ledger. Each
// logical field lives under its own key as a string-encoded value; writes to
// different keys are independent.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Wellness values
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	GetAll(ctx context.Context) (map[string]string, error)

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Utils
	GetConfigPath() string
}

// MoodHistoryReader is implemented by SQL backends that mirror moodEntries
// into a date-keyed table.
type MoodHistoryReader interface {
	MoodHistory(ctx context.Context) ([]models.MoodEntry, error)
}
