package testsupport

import (
	"database/sql"

	"github.com/goliatone/go-posts/pkg/storage"
)

// NewSQLiteMemoryDB opens the shared in-memory database integration tests
// run against.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return storage.OpenSQLite(storage.MemoryDSN)
}
