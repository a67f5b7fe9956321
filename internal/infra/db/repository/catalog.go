package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

// catalog stores shared reference records (no owner). kind is used as a
// filterable attribute such as the category.
type catalog[T any] struct {
	col  docstore.Collection
	what string
	id   func(*T) *string
	kind func(*T) string
}

func (c catalog[T]) fill(v *T, d docstore.Document) { *c.id(v) = d.ID }

func (c catalog[T]) list(ctx context.Context, f docstore.Filter) ([]*T, error) {
	op := c.col.Name() + ".List"
	docs, err := c.col.Find(ctx, f)
	if err != nil {
		return nil, storeErr(op, c.what, err)
	}
	return decodeAll(op, docs, c.fill)
}

func (c catalog[T]) get(ctx context.Context, id string) (*T, error) {
	op := c.col.Name() + ".Get"
	d, err := c.col.Get(ctx, id)
	if err != nil {
		return nil, storeErr(op, c.what, err)
	}
	return decodeOne(op, d, c.fill)
}

func (c catalog[T]) count(ctx context.Context) (int, error) {
	n, err := c.col.Count(ctx, docstore.Filter{})
	return n, storeErr(c.col.Name()+".Count", c.what, err)
}

func (c catalog[T]) insertMany(ctx context.Context, items []*T) error {
	op := c.col.Name() + ".Insert"
	for _, it := range items {
		id := c.id(it)
		if *id == "" {
			*id = uuid.NewString()
		}
		body, err := encode(op, it)
		if err != nil {
			return err
		}
		kind := ""
		if c.kind != nil {
			kind = c.kind(it)
		}
		if _, err := c.col.Insert(ctx, docstore.Document{ID: *id, Kind: kind, Body: body}); err != nil {
			return storeErr(op, c.what, err)
		}
	}
	return nil
}
