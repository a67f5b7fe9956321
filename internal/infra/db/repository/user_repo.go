package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
	"github.com/bryanwahyu/udyamsakhi/internal/domain/user"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

// userRecord keeps the password hash that user.User hides from JSON.
type userRecord struct {
	*user.User
	PasswordHash string `json:"passwordHash"`
}

type UserRepository struct {
	col docstore.Collection
}

func NewUserRepository(db docstore.Database) *UserRepository {
	return &UserRepository{col: db.Collection(Users)}
}

func emailKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (r *UserRepository) decode(op string, d docstore.Document) (*user.User, error) {
	rec := userRecord{User: &user.User{}}
	if err := docstore.Decode(d, &rec); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, op, "store error", err)
	}
	rec.User.ID = d.ID
	rec.User.PasswordHash = rec.PasswordHash
	return rec.User, nil
}

func (r *UserRepository) encode(op string, u *user.User) ([]byte, error) {
	return encode(op, userRecord{User: u, PasswordHash: u.PasswordHash})
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	const op = "users.Create"
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	body, err := r.encode(op, u)
	if err != nil {
		return err
	}
	_, err = r.col.Insert(ctx, docstore.Document{ID: u.ID, Kind: emailKey(u.Email), Body: body, CreatedAt: u.CreatedAt})
	if errors.Is(err, docstore.ErrDuplicate) {
		return apperr.Conflict(op, "email already registered")
	}
	return storeErr(op, "user", err)
}

func (r *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	const op = "users.Get"
	d, err := r.col.Get(ctx, id)
	if err != nil {
		return nil, storeErr(op, "user", err)
	}
	return r.decode(op, d)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	const op = "users.GetByEmail"
	docs, err := r.col.Find(ctx, docstore.Filter{Kind: emailKey(email), Limit: 1})
	if err != nil {
		return nil, storeErr(op, "user", err)
	}
	if len(docs) == 0 {
		return nil, storeErr(op, "user", docstore.ErrNotFound)
	}
	return r.decode(op, docs[0])
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	const op = "users.Update"
	body, err := r.encode(op, u)
	if err != nil {
		return err
	}
	_, err = r.col.Replace(ctx, docstore.Document{ID: u.ID, Kind: emailKey(u.Email), Body: body})
	return storeErr(op, "user", err)
}
