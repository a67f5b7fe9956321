package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

// Connect opens a SQLite database file (":memory:" works for tests).
func Connect(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func Open(ctx context.Context, path string) (*docstore.SQLDatabase, error) {
	db, err := Connect(ctx, path)
	if err != nil {
		return nil, err
	}
	return docstore.NewSQL(db, Dialect{}), nil
}

// Dialect for SQLite: TEXT body, ON CONFLICT upsert.
type Dialect struct{}

func (Dialect) DriverName() string { return "sqlite" }

func (Dialect) CreateTable(table string, unique bool) []string {
	idx := "INDEX"
	if unique {
		idx = "UNIQUE INDEX"
	}
	return []string{
		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL DEFAULT '',
  parent_id TEXT NOT NULL DEFAULT '',
  kind TEXT NOT NULL DEFAULT '',
  body TEXT NOT NULL,
  revision INTEGER NOT NULL DEFAULT 1,
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
)`, table),
		fmt.Sprintf("CREATE %s IF NOT EXISTS %s_key ON %s (owner_id, parent_id, kind)", idx, table, table),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_created ON %s (created_at)", table, table),
	}
}

func (Dialect) Upsert(table string) string {
	return `
INSERT INTO ` + table + `
(id, owner_id, parent_id, kind, body, revision, created_at, updated_at)
VALUES (?,?,?,?,?,1,?,?)
ON CONFLICT (owner_id, parent_id, kind) DO UPDATE SET
 body = excluded.body,
 updated_at = excluded.updated_at,
 revision = revision + 1`
}

func (Dialect) IsDuplicate(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	// without extended result codes only the primary code is set
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")
}
