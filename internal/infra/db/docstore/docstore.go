// Package docstore stores JSON documents in named collections. Every document
// carries an owner, an optional parent and a kind; (owner, parent, kind) is
// the natural key used by UpsertByKey.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
)

type Document struct {
	ID        string
	OwnerID   string
	ParentID  string
	Kind      string
	Body      json.RawMessage
	Revision  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter matches on every non-empty field. Limit <= 0 means no limit.
type Filter struct {
	ID       string
	OwnerID  string
	ParentID string
	Kind     string
	Limit    int
}

type Collection interface {
	Name() string
	Get(ctx context.Context, id string) (Document, error)
	// Find returns matching documents, newest first.
	Find(ctx context.Context, f Filter) ([]Document, error)
	Count(ctx context.Context, f Filter) (int, error)
	// Insert assigns an ID when empty and starts at revision 1.
	Insert(ctx context.Context, d Document) (Document, error)
	// Replace overwrites owner, parent, kind and body of d.ID and bumps the revision.
	Replace(ctx context.Context, d Document) (Document, error)
	// UpsertByKey atomically creates or fully replaces the document with d's
	// (owner, parent, kind) and returns what is stored.
	UpsertByKey(ctx context.Context, d Document) (Document, error)
	Delete(ctx context.Context, id string) error
	DeleteWhere(ctx context.Context, f Filter) (int64, error)
}

// Spec describes a collection for Ensure. UniqueKey makes (owner, parent,
// kind) unique.
type Spec struct {
	Name      string
	UniqueKey bool
}

type Database interface {
	Ensure(ctx context.Context, specs ...Spec) error
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close() error
}

// Decode unmarshals a document body into v.
func Decode(d Document, v any) error {
	return json.Unmarshal(d.Body, v)
}

// Encode marshals v into a document body.
func Encode(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}
