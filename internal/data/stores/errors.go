package stores

import (
	"database/sql"
	"errors"

	"github.com/hay-kot/taskmgr/internal/core/kv"
)

// notFound maps sql.ErrNoRows onto kv.ErrNotFound so callers only check one sentinel.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return kv.ErrNotFound
	}
	return err
}
