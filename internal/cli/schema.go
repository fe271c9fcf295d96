package cli

import (
	"context"
	"errors"

	"github.com/julianstephens/heybuddy/internal/migration"
	"github.com/julianstephens/heybuddy/internal/storage/sqlite"
)

// schemaStore is implemented by the SQL backends
type schemaStore interface {
	SchemaStatus(ctx context.Context) (migration.Status, error)
	Migrate(ctx context.Context, logFn func(string)) (int, error)
}

var errBackupUnsupported = errors.New("backups are only available for sqlite storage")

// sqlitePath returns the database file of a sqlite store.
func (c *Context) sqlitePath() (string, error) {
	s, ok := c.Store.(*sqlite.Store)
	if !ok {
		return "", errBackupUnsupported
	}
	return s.GetConfigPath(), nil
}
