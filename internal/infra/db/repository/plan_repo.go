package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/plan"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

type PlanRepository struct {
	col docstore.Collection
}

func NewPlanRepository(db docstore.Database) *PlanRepository {
	return &PlanRepository{col: db.Collection(BusinessPlans)}
}

func fillPlan(p *plan.BusinessPlan, d docstore.Document) {
	p.ID = d.ID
	p.UserID = d.OwnerID
	if p.VersionHistory == nil {
		p.VersionHistory = []plan.VersionEntry{}
	}
}

func (r *PlanRepository) Create(ctx context.Context, p *plan.BusinessPlan) error {
	const op = "plans.Create"
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	body, err := encode(op, p)
	if err != nil {
		return err
	}
	_, err = r.col.Insert(ctx, docstore.Document{ID: p.ID, OwnerID: p.UserID, Body: body, CreatedAt: p.CreatedAt})
	return storeErr(op, "plan", err)
}

func (r *PlanRepository) Get(ctx context.Context, userID, id string) (*plan.BusinessPlan, error) {
	const op = "plans.Get"
	docs, err := r.col.Find(ctx, docstore.Filter{ID: id, OwnerID: userID, Limit: 1})
	if err != nil {
		return nil, storeErr(op, "plan", err)
	}
	// another user's plan looks exactly like a missing one
	if len(docs) == 0 {
		return nil, storeErr(op, "plan", docstore.ErrNotFound)
	}
	return decodeOne(op, docs[0], fillPlan)
}

func (r *PlanRepository) ListByUser(ctx context.Context, userID string) ([]*plan.BusinessPlan, error) {
	const op = "plans.ListByUser"
	docs, err := r.col.Find(ctx, docstore.Filter{OwnerID: userID})
	if err != nil {
		return nil, storeErr(op, "plan", err)
	}
	return decodeAll(op, docs, fillPlan)
}

func (r *PlanRepository) Update(ctx context.Context, p *plan.BusinessPlan) error {
	const op = "plans.Update"
	body, err := encode(op, p)
	if err != nil {
		return err
	}
	_, err = r.col.Replace(ctx, docstore.Document{ID: p.ID, OwnerID: p.UserID, Body: body})
	return storeErr(op, "plan", err)
}

func (r *PlanRepository) Delete(ctx context.Context, userID, id string) error {
	const op = "plans.Delete"
	n, err := r.col.DeleteWhere(ctx, docstore.Filter{ID: id, OwnerID: userID})
	if err != nil {
		return storeErr(op, "plan", err)
	}
	if n == 0 {
		return storeErr(op, "plan", docstore.ErrNotFound)
	}
	return nil
}
