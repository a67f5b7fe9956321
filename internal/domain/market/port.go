package market

import (
	"context"
	"encoding/json"
)

// Repository port for cached market reports.
type Repository interface {
	// Upsert atomically creates or replaces the document for
	// (userID, planID, tabType) and returns what was stored.
	Upsert(ctx context.Context, userID, planID string, tabType ReportType, payload json.RawMessage) (*Data, error)
	Get(ctx context.Context, userID, planID string, tabType ReportType) (*Data, error)
	ListByPlan(ctx context.Context, userID, planID string) ([]*Data, error)
}
