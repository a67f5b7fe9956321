package repository

import (
	"context"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/marketplace"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

type MarketplaceRepository struct {
	cat catalog[marketplace.Marketplace]
}

func NewMarketplaceRepository(db docstore.Database) *MarketplaceRepository {
	return &MarketplaceRepository{cat: catalog[marketplace.Marketplace]{
		col:  db.Collection(Marketplaces),
		what: "marketplace",
		id:   func(m *marketplace.Marketplace) *string { return &m.ID },
	}}
}

func (r *MarketplaceRepository) List(ctx context.Context) ([]*marketplace.Marketplace, error) {
	return r.cat.list(ctx, docstore.Filter{})
}

func (r *MarketplaceRepository) Count(ctx context.Context) (int, error) { return r.cat.count(ctx) }

func (r *MarketplaceRepository) InsertMany(ctx context.Context, items []*marketplace.Marketplace) error {
	return r.cat.insertMany(ctx, items)
}
