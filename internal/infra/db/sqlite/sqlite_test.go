package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

func openTest(t *testing.T) *docstore.SQLDatabase {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Ensure(ctx,
		docstore.Spec{Name: "notes"},
		docstore.Spec{Name: "reports", UniqueKey: true},
	))
	return db
}

func TestInsertGetFind(t *testing.T) {
	ctx := context.Background()
	col := openTest(t).Collection("notes")

	first, err := col.Insert(ctx, docstore.Document{OwnerID: "u1", Kind: "a", Body: json.RawMessage(`{"n":1}`)})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, int64(1), first.Revision)

	time.Sleep(time.Millisecond)
	_, err = col.Insert(ctx, docstore.Document{OwnerID: "u1", Kind: "b", Body: json.RawMessage(`{"n":2}`)})
	require.NoError(t, err)
	_, err = col.Insert(ctx, docstore.Document{OwnerID: "u2", Kind: "a", Body: json.RawMessage(`{"n":3}`)})
	require.NoError(t, err)

	got, err := col.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(got.Body))
	assert.Equal(t, "u1", got.OwnerID)

	docs, err := col.Find(ctx, docstore.Filter{OwnerID: "u1"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[0].Kind, "newest first")

	n, err := col.Count(ctx, docstore.Filter{Kind: "a"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	limited, err := col.Find(ctx, docstore.Filter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = col.Get(ctx, "missing")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestReplaceBumpsRevision(t *testing.T) {
	ctx := context.Background()
	col := openTest(t).Collection("notes")

	d, err := col.Insert(ctx, docstore.Document{OwnerID: "u1", Body: json.RawMessage(`{"v":"old"}`)})
	require.NoError(t, err)

	d.Body = json.RawMessage(`{"v":"new"}`)
	stored, err := col.Replace(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Revision)
	assert.JSONEq(t, `{"v":"new"}`, string(stored.Body))
	assert.Equal(t, d.CreatedAt.UnixNano(), stored.CreatedAt.UnixNano())

	_, err = col.Replace(ctx, docstore.Document{ID: "nope", Body: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestUpsertByKeyReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	col := openTest(t).Collection("reports")
	key := docstore.Document{OwnerID: "u1", ParentID: "p1", Kind: "analysis"}

	key.Body = json.RawMessage(`{"trends":["a"],"threats":["x"]}`)
	first, err := col.UpsertByKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Revision)

	key.Body = json.RawMessage(`{"trends":["b"]}`)
	second, err := col.UpsertByKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(2), second.Revision)
	assert.JSONEq(t, `{"trends":["b"]}`, string(second.Body))

	n, err := col.Count(ctx, docstore.Filter{OwnerID: "u1", ParentID: "p1", Kind: "analysis"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUniqueKeyRejectsDuplicateInsert(t *testing.T) {
	ctx := context.Background()
	col := openTest(t).Collection("reports")
	d := docstore.Document{Kind: "a@b.c", Body: json.RawMessage(`{}`)}

	_, err := col.Insert(ctx, d)
	require.NoError(t, err)
	_, err = col.Insert(ctx, d)
	assert.ErrorIs(t, err, docstore.ErrDuplicate)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	col := openTest(t).Collection("notes")

	d, err := col.Insert(ctx, docstore.Document{OwnerID: "u1", Body: json.RawMessage(`{}`)})
	require.NoError(t, err)
	_, err = col.Insert(ctx, docstore.Document{OwnerID: "u1", ParentID: "x", Body: json.RawMessage(`{}`)})
	require.NoError(t, err)

	require.NoError(t, col.Delete(ctx, d.ID))
	assert.ErrorIs(t, col.Delete(ctx, d.ID), docstore.ErrNotFound)

	n, err := col.DeleteWhere(ctx, docstore.Filter{ParentID: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = col.DeleteWhere(ctx, docstore.Filter{})
	assert.Error(t, err)
}
