package redis

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/storage"
	"github.com/julianstephens/heybuddy/internal/storage/storagetest"
)

func TestNewPrefix(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantPrefix string
	}{
		{"default prefix", "redis://localhost:6379/0", "heybuddy"},
		{"custom prefix", "redis://localhost:6379/0?prefix=alice", "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.url)
			if s.prefix != tt.wantPrefix {
				t.Errorf("prefix = %q, want %q", s.prefix, tt.wantPrefix)
			}
			if strings.Contains(s.url, "prefix=") {
				t.Errorf("prefix should be stripped from the dial URL: %q", s.url)
			}
			if s.kvKey() != tt.wantPrefix+":kv" {
				t.Errorf("kvKey() = %q", s.kvKey())
			}
		})
	}
}

func TestGetConfigPathRedactsPassword(t *testing.T) {
	s := New("redis://:hunter2@localhost:6379/0")
	if strings.Contains(s.GetConfigPath(), "hunter2") {
		t.Errorf("GetConfigPath() leaked password: %q", s.GetConfigPath())
	}
}

func TestInvalidURL(t *testing.T) {
	s := New("notredis://localhost")
	if err := s.Init(); err == nil {
		t.Error("expected error for non-redis scheme")
	}
}

func TestUseBeforeInit(t *testing.T) {
	s := New("redis://localhost:6379/0")
	if _, err := s.Get(context.Background(), constants.KeyStreak); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Get() error = %v, want ErrNotInitialized", err)
	}
}

// TestStore_Integration needs a disposable server.
// Example: REDIS_TEST_ADDR="localhost:6379"
func TestStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set, skipping Redis integration test")
	}

	storagetest.Run(t, func(t *testing.T) (storage.Provider, func() storage.Provider) {
		// A prefix per subtest keeps runs isolated
		url := "redis://" + addr + "/15?prefix=heybuddy-test-" + strings.ReplaceAll(t.Name(), "/", "-")
		store := New(url)
		if err := store.connect(); err != nil {
			t.Fatalf("connect failed: %v", err)
		}
		ctx := context.Background()
		if err := store.client.Del(ctx, store.kvKey(), store.settingsKey(), store.metaKey()).Err(); err != nil {
			t.Fatalf("clearing previous run failed: %v", err)
		}
		if err := store.Init(); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		t.Cleanup(func() { store.Close() })

		reopen := func() storage.Provider {
			again := New(url)
			if err := again.Load(); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			return again
		}
		return store, reopen
	})
}
