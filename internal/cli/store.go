package cli

import (
	"fmt"

	"github.com/julianstephens/heybuddy/internal/keyring"
	"github.com/julianstephens/heybuddy/internal/logger"
	"github.com/julianstephens/heybuddy/internal/storage"
	"github.com/julianstephens/heybuddy/internal/storage/postgres"
	"github.com/julianstephens/heybuddy/internal/storage/redis"
	"github.com/julianstephens/heybuddy/internal/storage/sqlite"
)

// NewStore picks the backend for a --storage value: a postgres:// or
// redis:// URL, a *.json file, or a sqlite database path.
func NewStore(target string) (storage.Provider, error) {
	switch kind := storage.DetectKind(target); kind {
	case storage.KindPostgres:
		if postgres.HasEmbeddedCredentials(target) {
			return nil, fmt.Errorf("%w: store it with 'heybuddy keyring set' or export %s instead",
				postgres.ErrEmbeddedCredentials, keyring.EnvConnection)
		}
		if err := postgres.ValidateConnString(target); err != nil {
			return nil, err
		}
		connStr, source := keyring.ResolveConnString(target)
		logger.Debug("Resolved PostgreSQL connection", "source", source)
		return postgres.New(connStr), nil
	case storage.KindRedis:
		return redis.New(target), nil
	case storage.KindJSON:
		return storage.NewJSONStore(target), nil
	default:
		return sqlite.NewStore(target), nil
	}
}
