package repository

import (
	"context"
	"strings"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/compliance"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

type ComplianceItemRepository struct {
	cat catalog[compliance.Item]
}

func NewComplianceItemRepository(db docstore.Database) *ComplianceItemRepository {
	return &ComplianceItemRepository{cat: catalog[compliance.Item]{
		col:  db.Collection(ComplianceItems),
		what: "compliance item",
		id:   func(i *compliance.Item) *string { return &i.ID },
		kind: func(i *compliance.Item) string { return strings.ToLower(i.Category) },
	}}
}

// List returns every item, or only those of category when set.
func (r *ComplianceItemRepository) List(ctx context.Context, category string) ([]*compliance.Item, error) {
	return r.cat.list(ctx, docstore.Filter{Kind: strings.ToLower(category)})
}

func (r *ComplianceItemRepository) Get(ctx context.Context, id string) (*compliance.Item, error) {
	return r.cat.get(ctx, id)
}

func (r *ComplianceItemRepository) Count(ctx context.Context) (int, error) { return r.cat.count(ctx) }

func (r *ComplianceItemRepository) InsertMany(ctx context.Context, items []*compliance.Item) error {
	return r.cat.insertMany(ctx, items)
}

type ComplianceProgressRepository struct {
	col docstore.Collection
}

func NewComplianceProgressRepository(db docstore.Database) *ComplianceProgressRepository {
	return &ComplianceProgressRepository{col: db.Collection(ComplianceProgress)}
}

func fillComplianceProgress(p *compliance.Progress, d docstore.Document) {
	p.ID = d.ID
	p.UserID = d.OwnerID
	p.ItemID = d.ParentID
	if p.CompletedSteps == nil {
		p.CompletedSteps = []int{}
	}
}

func (r *ComplianceProgressRepository) Upsert(ctx context.Context, p *compliance.Progress) (*compliance.Progress, error) {
	const op = "complianceProgress.Upsert"
	body, err := encode(op, p)
	if err != nil {
		return nil, err
	}
	d, err := r.col.UpsertByKey(ctx, docstore.Document{OwnerID: p.UserID, ParentID: p.ItemID, Kind: progressKind, Body: body})
	if err != nil {
		return nil, storeErr(op, "progress", err)
	}
	return decodeOne(op, d, fillComplianceProgress)
}

func (r *ComplianceProgressRepository) ListByUser(ctx context.Context, userID string) ([]*compliance.Progress, error) {
	const op = "complianceProgress.ListByUser"
	docs, err := r.col.Find(ctx, docstore.Filter{OwnerID: userID})
	if err != nil {
		return nil, storeErr(op, "progress", err)
	}
	return decodeAll(op, docs, fillComplianceProgress)
}
