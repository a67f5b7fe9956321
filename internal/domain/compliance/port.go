package compliance

import "context"

type ItemRepository interface {
	List(ctx context.Context, category string) ([]*Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, items []*Item) error
}

type ProgressRepository interface {
	// Upsert creates or replaces the progress for (UserID, ItemID).
	Upsert(ctx context.Context, p *Progress) (*Progress, error)
	ListByUser(ctx context.Context, userID string) ([]*Progress, error)
}
