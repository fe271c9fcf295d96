// Package redis keeps the wellness keys in a Redis hash so several machines
// can share one ledger.
package redis

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/models"
	"github.com/julianstephens/heybuddy/internal/storage"
)

const (
	schemaVersion = "1"
	opTimeout     = 3 * time.Second
)

type Store struct {
	url    string
	prefix string
	client *redis.Client
}

// New creates a store for a redis:// or rediss:// URL. Keys live under
// "heybuddy:" unless the URL sets ?prefix=.
func New(rawURL string) *Store {
	s := &Store{url: rawURL, prefix: constants.AppName}
	if u, err := url.Parse(rawURL); err == nil {
		q := u.Query()
		if p := q.Get("prefix"); p != "" {
			s.prefix = p
			q.Del("prefix")
			u.RawQuery = q.Encode()
			s.url = u.String()
		}
	}
	return s
}

func (s *Store) kvKey() string       { return s.prefix + ":kv" }
func (s *Store) settingsKey() string { return s.prefix + ":settings" }
func (s *Store) metaKey() string     { return s.prefix + ":meta" }

func (s *Store) connect() error {
	opts, err := redis.ParseURL(s.url)
	if err != nil {
		return fmt.Errorf("invalid redis URL: %w", err)
	}
	opts.DialTimeout = opTimeout
	opts.ReadTimeout = opTimeout
	opts.WriteTimeout = opTimeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.client = client
	return nil
}

func (s *Store) Init() error {
	if s.client == nil {
		if err := s.connect(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.HSetNX(ctx, s.metaKey(), "version", schemaVersion).Err(); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	n, err := s.client.HLen(ctx, s.settingsKey()).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		if err := s.SaveSettings(models.Settings{}); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *Store) Load() error {
	if s.client != nil {
		return nil
	}
	if err := s.connect(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	version, err := s.client.HGet(ctx, s.metaKey(), "version").Result()
	if errors.Is(err, redis.Nil) {
		_ = s.Close()
		return storage.ErrNotInitialized
	}
	if err != nil {
		_ = s.Close()
		return err
	}
	if version != schemaVersion {
		_ = s.Close()
		return fmt.Errorf("unsupported redis layout version %q", version)
	}
	return nil
}

func (s *Store) Close() error {
	if s.client != nil {
		err := s.client.Close()
		s.client = nil
		return err
	}
	return nil
}

func (s *Store) ensureOpen() error {
	if s.client == nil {
		return storage.ErrNotInitialized
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := s.ensureOpen(); err != nil {
		return "", err
	}
	v, err := s.client.HGet(ctx, s.kvKey(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if err := s.client.HSet(ctx, s.kvKey(), key, value).Err(); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	return s.client.HDel(ctx, s.kvKey(), key).Err()
}

func (s *Store) GetAll(ctx context.Context) (map[string]string, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	return s.client.HGetAll(ctx, s.kvKey()).Result()
}

func (s *Store) GetSettings() (models.Settings, error) {
	if err := s.ensureOpen(); err != nil {
		return models.Settings{}, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := s.client.HGetAll(ctx, s.settingsKey()).Result()
	if err != nil {
		return models.Settings{}, err
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

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	values := make(map[string]any)
	for k, v := range models.SettingsToMap(settings) {
		values[k] = v
	}
	return s.client.HSet(ctx, s.settingsKey(), values).Err()
}

// GetConfigPath returns the URL with any password redacted.
func (s *Store) GetConfigPath() string {
	u, err := url.Parse(s.url)
	if err != nil {
		return "redis"
	}
	return u.Redacted()
}
