package repository

import (
	"context"
	"encoding/json"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/market"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

// MarketRepository keeps one document per (user, plan, report type).
type MarketRepository struct {
	col docstore.Collection
}

func NewMarketRepository(db docstore.Database) *MarketRepository {
	return &MarketRepository{col: db.Collection(MarketData)}
}

func toMarketData(d docstore.Document) *market.Data {
	return &market.Data{
		ID:        d.ID,
		UserID:    d.OwnerID,
		PlanID:    d.ParentID,
		TabType:   market.ReportType(d.Kind),
		Payload:   d.Body,
		Revision:  d.Revision,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *MarketRepository) Upsert(ctx context.Context, userID, planID string, tabType market.ReportType, payload json.RawMessage) (*market.Data, error) {
	d, err := r.col.UpsertByKey(ctx, docstore.Document{
		OwnerID:  userID,
		ParentID: planID,
		Kind:     string(tabType),
		Body:     payload,
	})
	if err != nil {
		return nil, storeErr("market.Upsert", "market data", err)
	}
	return toMarketData(d), nil
}

func (r *MarketRepository) Get(ctx context.Context, userID, planID string, tabType market.ReportType) (*market.Data, error) {
	docs, err := r.col.Find(ctx, docstore.Filter{OwnerID: userID, ParentID: planID, Kind: string(tabType), Limit: 1})
	if err != nil {
		return nil, storeErr("market.Get", "market data", err)
	}
	if len(docs) == 0 {
		return nil, storeErr("market.Get", "market data", docstore.ErrNotFound)
	}
	return toMarketData(docs[0]), nil
}

func (r *MarketRepository) ListByPlan(ctx context.Context, userID, planID string) ([]*market.Data, error) {
	docs, err := r.col.Find(ctx, docstore.Filter{OwnerID: userID, ParentID: planID})
	if err != nil {
		return nil, storeErr("market.ListByPlan", "market data", err)
	}
	out := make([]*market.Data, 0, len(docs))
	for _, d := range docs {
		out = append(out, toMarketData(d))
	}
	return out, nil
}
