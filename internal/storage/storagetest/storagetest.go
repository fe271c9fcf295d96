// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/models"
	"github.com/julianstephens/heybuddy/internal/storage"
)

// Run exercises an initialized provider. newStore must return a fresh,
// initialized store together with a func that reopens the same data through
// a new instance (used to check durability).
func Run(t *testing.T, newStore func(t *testing.T) (storage.Provider, func() storage.Provider)) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		s, _ := newStore(t)
		if _, err := s.Get(ctx, constants.KeyStreak); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("SetGetOverwrite", func(t *testing.T) {
		s, _ := newStore(t)
		if err := s.Set(ctx, constants.KeyStreak, "3"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := s.Set(ctx, constants.KeyStreak, "4"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := s.Get(ctx, constants.KeyStreak)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != "4" {
			t.Errorf("Get() = %q, want %q", got, "4")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		s, _ := newStore(t)
		if err := s.Set(ctx, constants.KeyTodaysMood, "😊"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := s.Delete(ctx, constants.KeyTodaysMood); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := s.Get(ctx, constants.KeyTodaysMood); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
		}
		if err := s.Delete(ctx, constants.KeyTodaysMood); err != nil {
			t.Errorf("deleting a missing key should succeed, got %v", err)
		}
	})

	t.Run("MoodEntriesRoundTrip", func(t *testing.T) {
		s, reopen := newStore(t)
		entries := []models.MoodEntry{
			{Date: "2024-05-02", Emoji: "😊", Intensity: 7},
			{Date: "2024-05-01", Emoji: "😢", Intensity: 3, Note: "rainy \"day\""},
			{Date: "2024-05-03", Emoji: "🤩", Intensity: 10},
		}
		raw, err := json.Marshal(entries)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if err := s.Set(ctx, constants.KeyMoodEntries, string(raw)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := s.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		again := reopen()
		defer again.Close()
		got, err := again.Get(ctx, constants.KeyMoodEntries)
		if err != nil {
			t.Fatalf("Get after reopen failed: %v", err)
		}
		var decoded []models.MoodEntry
		if err := json.Unmarshal([]byte(got), &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(decoded) != len(entries) {
			t.Fatalf("got %d entries, want %d", len(decoded), len(entries))
		}
		for i := range entries {
			if decoded[i] != entries[i] {
				t.Errorf("entry %d = %+v, want %+v", i, decoded[i], entries[i])
			}
		}
	})

	t.Run("GetAll", func(t *testing.T) {
		s, _ := newStore(t)
		want := map[string]string{
			constants.KeyStreak:      "2",
			constants.KeyLastCheckIn: "2024-05-02",
			constants.KeyBuddy:       "luna",
		}
		for k, v := range want {
			if err := s.Set(ctx, k, v); err != nil {
				t.Fatalf("Set(%s) failed: %v", k, err)
			}
		}
		got, err := s.GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll failed: %v", err)
		}
		for k, v := range want {
			if got[k] != v {
				t.Errorf("GetAll()[%s] = %q, want %q", k, got[k], v)
			}
		}
	})

	t.Run("Settings", func(t *testing.T) {
		s, _ := newStore(t)
		settings, err := s.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if settings.Timezone != constants.DefaultTimezone || settings.TrendOrder != constants.DefaultTrendOrder {
			t.Errorf("unexpected default settings: %+v", settings)
		}

		settings.Timezone = "Europe/Berlin"
		settings.TrendOrder = constants.TrendOrderDate
		if err := s.SaveSettings(settings); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}
		got, err := s.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if got != settings {
			t.Errorf("GetSettings() = %+v, want %+v", got, settings)
		}
	})
}
