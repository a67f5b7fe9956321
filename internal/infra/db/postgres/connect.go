package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func Open(ctx context.Context, dsn string) (*docstore.SQLDatabase, error) {
	db, err := Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return docstore.NewSQL(db, Dialect{}), nil
}

// Dialect for PostgreSQL: JSONB body, ON CONFLICT upsert.
type Dialect struct{}

func (Dialect) DriverName() string { return "postgres" }

func (Dialect) CreateTable(table string, unique bool) []string {
	idx := "INDEX"
	if unique {
		idx = "UNIQUE INDEX"
	}
	return []string{
		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  id VARCHAR(64) PRIMARY KEY,
  owner_id VARCHAR(64) NOT NULL DEFAULT '',
  parent_id VARCHAR(64) NOT NULL DEFAULT '',
  kind VARCHAR(191) NOT NULL DEFAULT '',
  body JSONB NOT NULL,
  revision BIGINT NOT NULL DEFAULT 1,
  created_at BIGINT NOT NULL,
  updated_at BIGINT NOT NULL
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
 body = EXCLUDED.body,
 updated_at = EXCLUDED.updated_at,
 revision = ` + table + `.revision + 1`
}

func (Dialect) IsDuplicate(err error) bool {
	var pe *pq.Error
	return errors.As(err, &pe) && pe.Code == "23505"
}
