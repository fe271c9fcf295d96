package storage

import "strings"

// Kind identifies a storage backend
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
	KindJSON     Kind = "json"
)

// DetectKind picks the backend for a --storage value: postgres and redis URLs
// by scheme, *.json paths for the file store, and sqlite for everything else.
func DetectKind(target string) Kind {
	t := strings.TrimSpace(target)
	lower := strings.ToLower(t)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return KindPostgres
	case strings.HasPrefix(lower, "redis://"), strings.HasPrefix(lower, "rediss://"):
		return KindRedis
	case strings.HasSuffix(lower, ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}
