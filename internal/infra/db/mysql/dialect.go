package mysql

import (
	"errors"
	"fmt"

	driver "github.com/go-sql-driver/mysql"
)

// Dialect for MySQL 8: JSON body, indexes declared inline.
type Dialect struct{}

func (Dialect) DriverName() string { return "mysql" }

func (Dialect) CreateTable(table string, unique bool) []string {
	key := "KEY"
	if unique {
		key = "UNIQUE KEY"
	}
	return []string{fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %[1]s (
  id VARCHAR(64) NOT NULL PRIMARY KEY,
  owner_id VARCHAR(64) NOT NULL DEFAULT '',
  parent_id VARCHAR(64) NOT NULL DEFAULT '',
  kind VARCHAR(191) NOT NULL DEFAULT '',
  body JSON NOT NULL,
  revision BIGINT NOT NULL DEFAULT 1,
  created_at BIGINT NOT NULL,
  updated_at BIGINT NOT NULL,
  %[2]s %[1]s_key (owner_id, parent_id, kind),
  KEY %[1]s_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`, table, key)}
}

func (Dialect) Upsert(table string) string {
	return `
INSERT INTO ` + table + `
(id, owner_id, parent_id, kind, body, revision, created_at, updated_at)
VALUES (?,?,?,?,?,1,?,?)
ON DUPLICATE KEY UPDATE
 body=VALUES(body),
 updated_at=VALUES(updated_at),
 revision=revision+1`
}

func (Dialect) IsDuplicate(err error) bool {
	var me *driver.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
