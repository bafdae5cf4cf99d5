package stores

import (
	"fmt"

	"github.com/hay-kot/taskmgr/internal/core/config"
	"github.com/hay-kot/taskmgr/internal/core/kv"
	"github.com/hay-kot/taskmgr/internal/data/db"
)

// Open returns the kv.KV for the given backend. The returned close func
// releases any underlying resources and is never nil.
func Open(backend, path string) (kv.KV, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case config.BackendSQLite:
		database, err := db.Open(path, db.DefaultOpenOptions())
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite store: %w", err)
		}
		return NewKVStore(database), database.Close, nil
	case config.BackendFile:
		return NewFileStore(path), noop, nil
	case config.BackendMemory:
		return NewMemoryStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", backend)
	}
}
