package repository

import (
	"context"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/funding"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

type FundingRepository struct {
	cat catalog[funding.Scheme]
}

func NewFundingRepository(db docstore.Database) *FundingRepository {
	return &FundingRepository{cat: catalog[funding.Scheme]{
		col:  db.Collection(FundingSchemes),
		what: "funding scheme",
		id:   func(s *funding.Scheme) *string { return &s.ID },
	}}
}

func (r *FundingRepository) List(ctx context.Context) ([]*funding.Scheme, error) {
	return r.cat.list(ctx, docstore.Filter{})
}

func (r *FundingRepository) Count(ctx context.Context) (int, error) { return r.cat.count(ctx) }

func (r *FundingRepository) InsertMany(ctx context.Context, items []*funding.Scheme) error {
	return r.cat.insertMany(ctx, items)
}
