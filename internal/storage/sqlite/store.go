package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/heybuddy/internal/logger"
	"github.com/julianstephens/heybuddy/internal/migration"
	"github.com/julianstephens/heybuddy/internal/models"
	"github.com/julianstephens/heybuddy/internal/storage"
	"github.com/julianstephens/heybuddy/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) open() error {
	// busy_timeout lets the TUI and a one-shot CLI command share the file
	db, err := sql.Open("sqlite", s.path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if _, err := s.runner().Apply(context.Background(), func(msg string) {
		logger.Info(msg)
	}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(models.Settings{}); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}

	if err := s.open(); err != nil {
		return err
	}

	st, err := s.runner().Status(context.Background())
	if err == nil && len(st.Pending) > 0 {
		err = fmt.Errorf("database schema is at version %d but %d is required, run 'heybuddy migrate'", st.Current, st.Latest)
	}
	if err != nil {
		_ = s.Close()
		return err
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() *migration.Runner {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		// The embed pattern guarantees the directory exists
		panic(err)
	}
	return migration.NewRunner(s.db, sub)
}

// openExisting opens the database without the schema check Load performs.
func (s *Store) openExisting() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}
	return s.open()
}

// Migrate applies pending schema migrations to an existing database.
func (s *Store) Migrate(ctx context.Context, logFn func(string)) (int, error) {
	if err := s.openExisting(); err != nil {
		return 0, err
	}
	return s.runner().Apply(ctx, logFn)
}

// SchemaStatus reports the applied and latest schema versions. It works on
// databases that Load would refuse because migrations are pending.
func (s *Store) SchemaStatus(ctx context.Context) (migration.Status, error) {
	if err := s.openExisting(); err != nil {
		return migration.Status{}, err
	}
	return s.runner().Status(ctx)
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, nil before Init or Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

func (s *Store) ensureOpen() error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	return nil
}

var errNoSettings = errors.New("settings not found")
