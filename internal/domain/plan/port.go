package plan

import "context"

// Repository port for business plans. Lookups are scoped to the owning user.
type Repository interface {
	Create(ctx context.Context, p *BusinessPlan) error
	Get(ctx context.Context, userID, id string) (*BusinessPlan, error)
	ListByUser(ctx context.Context, userID string) ([]*BusinessPlan, error)
	Update(ctx context.Context, p *BusinessPlan) error
	Delete(ctx context.Context, userID, id string) error
}

// Exporter renders a plan into a downloadable document.
type Exporter interface {
	Export(p *BusinessPlan, format string) (body []byte, contentType string, err error)
}
