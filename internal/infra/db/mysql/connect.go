package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// test ping
	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Open connects and wraps the pool as a document database.
func Open(ctx context.Context, dsn string) (*docstore.SQLDatabase, error) {
	db, err := Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return docstore.NewSQL(db, Dialect{}), nil
}
