// Package sqlitetest opens throwaway SQLite document databases for tests.
package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/repository"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/sqlite"
)

// Open returns a database with every collection ensured, closed on cleanup.
func Open(t testing.TB) docstore.Database {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Ensure(ctx, repository.Specs...); err != nil {
		t.Fatalf("ensure collections: %v", err)
	}
	return db
}
