package ledger

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/julianstephens/heybuddy/internal/models"
	"github.com/julianstephens/heybuddy/internal/storage"
)

var errDiskFull = errors.New("disk full")

// memStore is an in-memory storage.Provider that can be told to fail.
type memStore struct {
	mu       sync.Mutex
	values   map[string]string
	failKeys map[string]bool
	failAll  error
	writes   []string
	stall    chan struct{}
}

func newMemStore(values map[string]string) *memStore {
	if values == nil {
		values = map[string]string{}
	}
	return &memStore{values: values, failKeys: map[string]bool{}}
}

func (m *memStore) Init() error  { return nil }
func (m *memStore) Load() error  { return nil }
func (m *memStore) Close() error { return nil }

func (m *memStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (m *memStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	stall := m.stall
	m.mu.Unlock()
	if stall != nil {
		<-stall
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failKeys[key] {
		return errDiskFull
	}
	m.values[key] = value
	m.writes = append(m.writes, key+"="+value)
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memStore) GetAll(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	return maps.Clone(m.values), nil
}

func (m *memStore) GetSettings() (models.Settings, error) {
	s := models.Settings{}
	models.ApplyDefaultSettings(&s)
	return s, nil
}

func (m *memStore) SaveSettings(models.Settings) error { return nil }
func (m *memStore) GetConfigPath() string              { return "memory" }

func (m *memStore) value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *memStore) failKey(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failKeys[key] = true
}

// stallWrites makes Set block until the returned func is called.
func (m *memStore) stallWrites() (release func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan struct{})
	m.stall = ch
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}
