package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Dialect holds what differs between SQL engines. Statements use '?'
// placeholders; they are rebound for the driver.
type Dialect interface {
	// DriverName is the database/sql driver name, also used for rebinding.
	DriverName() string
	CreateTable(table string, unique bool) []string
	Upsert(table string) string
	IsDuplicate(err error) bool
}

type SQLDatabase struct {
	db      *sqlx.DB
	dialect Dialect
}

func NewSQL(db *sql.DB, d Dialect) *SQLDatabase {
	return &SQLDatabase{db: sqlx.NewDb(db, d.DriverName()), dialect: d}
}

func (s *SQLDatabase) Ensure(ctx context.Context, specs ...Spec) error {
	for _, sp := range specs {
		for _, stmt := range s.dialect.CreateTable(sp.Name, sp.UniqueKey) {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("ensure %s: %w", sp.Name, err)
			}
		}
	}
	return nil
}

func (s *SQLDatabase) Collection(name string) Collection {
	return &sqlCollection{db: s.db, dialect: s.dialect, table: name}
}

func (s *SQLDatabase) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLDatabase) Close() error { return s.db.Close() }

type row struct {
	ID        string `db:"id"`
	OwnerID   string `db:"owner_id"`
	ParentID  string `db:"parent_id"`
	Kind      string `db:"kind"`
	Body      []byte `db:"body"`
	Revision  int64  `db:"revision"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func (r row) document() Document {
	return Document{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		ParentID:  r.ParentID,
		Kind:      r.Kind,
		Body:      r.Body,
		Revision:  r.Revision,
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
		UpdatedAt: time.Unix(0, r.UpdatedAt).UTC(),
	}
}

const columns = "id, owner_id, parent_id, kind, body, revision, created_at, updated_at"

type sqlCollection struct {
	db      *sqlx.DB
	dialect Dialect
	table   string
}

func (c *sqlCollection) Name() string { return c.table }

func (c *sqlCollection) Get(ctx context.Context, id string) (Document, error) {
	var r row
	q := c.db.Rebind("SELECT " + columns + " FROM " + c.table + " WHERE id=?")
	if err := c.db.GetContext(ctx, &r, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return r.document(), nil
}

func where(f Filter) (string, []any) {
	var conds []string
	var args []any
	add := func(col, v string) {
		if v != "" {
			conds = append(conds, col+"=?")
			args = append(args, v)
		}
	}
	add("id", f.ID)
	add("owner_id", f.OwnerID)
	add("parent_id", f.ParentID)
	add("kind", f.Kind)
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (c *sqlCollection) Find(ctx context.Context, f Filter) ([]Document, error) {
	w, args := where(f)
	q := "SELECT " + columns + " FROM " + c.table + w + " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", f.Limit)
	}
	var rows []row
	if err := c.db.SelectContext(ctx, &rows, c.db.Rebind(q), args...); err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.document())
	}
	return out, nil
}

func (c *sqlCollection) Count(ctx context.Context, f Filter) (int, error) {
	w, args := where(f)
	var n int
	err := c.db.GetContext(ctx, &n, c.db.Rebind("SELECT COUNT(*) FROM "+c.table+w), args...)
	return n, err
}

func (c *sqlCollection) Insert(ctx context.Context, d Document) (Document, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	d.Revision = 1

	q := c.db.Rebind("INSERT INTO " + c.table + " (" + columns + ") VALUES (?,?,?,?,?,?,?,?)")
	_, err := c.db.ExecContext(ctx, q,
		d.ID, d.OwnerID, d.ParentID, d.Kind, string(d.Body), d.Revision,
		d.CreatedAt.UnixNano(), d.UpdatedAt.UnixNano(),
	)
	if err != nil {
		if c.dialect.IsDuplicate(err) {
			return Document{}, ErrDuplicate
		}
		return Document{}, err
	}
	return d, nil
}

func (c *sqlCollection) Replace(ctx context.Context, d Document) (Document, error) {
	q := c.db.Rebind("UPDATE " + c.table +
		" SET owner_id=?, parent_id=?, kind=?, body=?, updated_at=?, revision=revision+1 WHERE id=?")
	res, err := c.db.ExecContext(ctx, q,
		d.OwnerID, d.ParentID, d.Kind, string(d.Body), time.Now().UTC().UnixNano(), d.ID,
	)
	if err != nil {
		if c.dialect.IsDuplicate(err) {
			return Document{}, ErrDuplicate
		}
		return Document{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Document{}, ErrNotFound
	}
	return c.Get(ctx, d.ID)
}

func (c *sqlCollection) UpsertByKey(ctx context.Context, d Document) (Document, error) {
	now := time.Now().UTC().UnixNano()
	q := c.db.Rebind(c.dialect.Upsert(c.table))
	if _, err := c.db.ExecContext(ctx, q,
		uuid.NewString(), d.OwnerID, d.ParentID, d.Kind, string(d.Body), now, now,
	); err != nil {
		return Document{}, err
	}

	// re-read so the caller gets the stored row, not its own copy
	var r row
	sel := c.db.Rebind("SELECT " + columns + " FROM " + c.table + " WHERE owner_id=? AND parent_id=? AND kind=?")
	if err := c.db.GetContext(ctx, &r, sel, d.OwnerID, d.ParentID, d.Kind); err != nil {
		return Document{}, err
	}
	return r.document(), nil
}

func (c *sqlCollection) Delete(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, c.db.Rebind("DELETE FROM "+c.table+" WHERE id=?"), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *sqlCollection) DeleteWhere(ctx context.Context, f Filter) (int64, error) {
	w, args := where(f)
	if w == "" {
		return 0, errors.New("docstore: DeleteWhere needs a filter")
	}
	res, err := c.db.ExecContext(ctx, c.db.Rebind("DELETE FROM "+c.table+w), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
