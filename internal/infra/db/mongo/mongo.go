package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to uri and selects the named database.
func Open(ctx context.Context, uri, name string) (*Database, error) {
	ctx2, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx2, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx2, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Database{client: client, db: client.Database(name)}, nil
}

func (d *Database) Ensure(ctx context.Context, specs ...docstore.Spec) error {
	for _, sp := range specs {
		models := []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "parentId", Value: 1}, {Key: "kind", Value: 1}},
				Options: options.Index().SetName(sp.Name + "_key").SetUnique(sp.UniqueKey),
			},
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName(sp.Name + "_created"),
			},
		}
		if _, err := d.db.Collection(sp.Name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure %s: %w", sp.Name, err)
		}
	}
	return nil
}

func (d *Database) Collection(name string) docstore.Collection {
	return &collection{c: d.db.Collection(name)}
}

func (d *Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

func (d *Database) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}

type record struct {
	ID        string   `bson:"_id"`
	OwnerID   string   `bson:"ownerId"`
	ParentID  string   `bson:"parentId"`
	Kind      string   `bson:"kind"`
	Body      bson.Raw `bson:"body"`
	Revision  int64    `bson:"revision"`
	CreatedAt int64    `bson:"createdAt"`
	UpdatedAt int64    `bson:"updatedAt"`
}

func (r record) document() (docstore.Document, error) {
	body, err := bson.MarshalExtJSON(r.Body, false, false)
	if err != nil {
		return docstore.Document{}, fmt.Errorf("decode body of %s: %w", r.ID, err)
	}
	return docstore.Document{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		ParentID:  r.ParentID,
		Kind:      r.Kind,
		Body:      body,
		Revision:  r.Revision,
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
		UpdatedAt: time.Unix(0, r.UpdatedAt).UTC(),
	}, nil
}

// toBSON stores the JSON body as a real sub-document so it stays queryable.
func toBSON(body []byte) (bson.D, error) {
	var doc bson.D
	if err := bson.UnmarshalExtJSON(body, false, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func filterOf(f docstore.Filter) bson.M {
	m := bson.M{}
	if f.ID != "" {
		m["_id"] = f.ID
	}
	if f.OwnerID != "" {
		m["ownerId"] = f.OwnerID
	}
	if f.ParentID != "" {
		m["parentId"] = f.ParentID
	}
	if f.Kind != "" {
		m["kind"] = f.Kind
	}
	return m
}

type collection struct {
	c *mongo.Collection
}

func (c *collection) Name() string { return c.c.Name() }

func (c *collection) decodeOne(res *mongo.SingleResult) (docstore.Document, error) {
	var r record
	if err := res.Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, err
	}
	return r.document()
}

func (c *collection) Get(ctx context.Context, id string) (docstore.Document, error) {
	return c.decodeOne(c.c.FindOne(ctx, bson.M{"_id": id}))
}

func (c *collection) Find(ctx context.Context, f docstore.Filter) ([]docstore.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	cur, err := c.c.Find(ctx, filterOf(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []docstore.Document{}
	for cur.Next(ctx) {
		var r record
		if err := cur.Decode(&r); err != nil {
			return nil, err
		}
		d, err := r.document()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, cur.Err()
}

func (c *collection) Count(ctx context.Context, f docstore.Filter) (int, error) {
	n, err := c.c.CountDocuments(ctx, filterOf(f))
	return int(n), err
}

func (c *collection) Insert(ctx context.Context, d docstore.Document) (docstore.Document, error) {
	body, err := toBSON(d.Body)
	if err != nil {
		return docstore.Document{}, err
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	d.Revision = 1

	_, err = c.c.InsertOne(ctx, bson.D{
		{Key: "_id", Value: d.ID},
		{Key: "ownerId", Value: d.OwnerID},
		{Key: "parentId", Value: d.ParentID},
		{Key: "kind", Value: d.Kind},
		{Key: "body", Value: body},
		{Key: "revision", Value: d.Revision},
		{Key: "createdAt", Value: d.CreatedAt.UnixNano()},
		{Key: "updatedAt", Value: d.UpdatedAt.UnixNano()},
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return docstore.Document{}, docstore.ErrDuplicate
		}
		return docstore.Document{}, err
	}
	return d, nil
}

func (c *collection) Replace(ctx context.Context, d docstore.Document) (docstore.Document, error) {
	body, err := toBSON(d.Body)
	if err != nil {
		return docstore.Document{}, err
	}
	update := bson.M{
		"$set": bson.M{
			"ownerId":   d.OwnerID,
			"parentId":  d.ParentID,
			"kind":      d.Kind,
			"body":      body,
			"updatedAt": time.Now().UTC().UnixNano(),
		},
		"$inc": bson.M{"revision": int64(1)},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	out, err := c.decodeOne(c.c.FindOneAndUpdate(ctx, bson.M{"_id": d.ID}, update, opts))
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return docstore.Document{}, docstore.ErrDuplicate
	}
	return out, err
}

func (c *collection) UpsertByKey(ctx context.Context, d docstore.Document) (docstore.Document, error) {
	body, err := toBSON(d.Body)
	if err != nil {
		return docstore.Document{}, err
	}
	now := time.Now().UTC().UnixNano()
	key := bson.M{"ownerId": d.OwnerID, "parentId": d.ParentID, "kind": d.Kind}
	update := bson.M{
		"$set":         bson.M{"body": body, "updatedAt": now},
		"$setOnInsert": bson.M{"_id": uuid.NewString(), "createdAt": now},
		"$inc":         bson.M{"revision": int64(1)},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	return c.decodeOne(c.c.FindOneAndUpdate(ctx, key, update, opts))
}

func (c *collection) Delete(ctx context.Context, id string) error {
	res, err := c.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (c *collection) DeleteWhere(ctx context.Context, f docstore.Filter) (int64, error) {
	m := filterOf(f)
	if len(m) == 0 {
		return 0, errors.New("docstore: DeleteWhere needs a filter")
	}
	res, err := c.c.DeleteMany(ctx, m)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
