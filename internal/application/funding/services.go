package funding

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bryanwahyu/udyamsakhi/internal/application"
	aiapp "github.com/bryanwahyu/udyamsakhi/internal/application/ai"
	domain "github.com/bryanwahyu/udyamsakhi/internal/domain/funding"
	"github.com/bryanwahyu/udyamsakhi/internal/domain/plan"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/ai/prompt"
	"github.com/bryanwahyu/udyamsakhi/internal/logger"
)

type Service struct {
	Schemes domain.Repository
	Plans   plan.Repository
	AI      *aiapp.Service

	seedMu sync.Mutex
}

func (s *Service) Seed(ctx context.Context) (int, error) {
	return application.SeedIfEmpty(ctx, &s.seedMu, s.Schemes, domain.Defaults)
}

// List returns every funding scheme, seeding the catalog on first use.
func (s *Service) List(ctx context.Context) ([]*domain.Scheme, error) {
	if _, err := s.Seed(ctx); err != nil {
		return nil, err
	}
	return s.Schemes.List(ctx)
}

// ForecastResult pairs the generated forecast with the schemes that can
// cover the required funding.
type ForecastResult struct {
	Forecast domain.Forecast  `json:"forecast"`
	Schemes  []*domain.Scheme `json:"eligibleSchemes"`
}

// Forecast generates a financial projection for a plan. It is not stored.
func (s *Service) Forecast(ctx context.Context, userID, planID string) (*ForecastResult, error) {
	p, err := s.Plans.Get(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	fc, err := aiapp.GenerateJSON[domain.Forecast](ctx, s.AI, "forecast",
		prompt.FinancialForecast(p), domain.ForecastRequired)
	if err != nil {
		return nil, err
	}
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	eligible := domain.Eligible(all, p.Industry, fc.FundingRequired)

	logger.FromContext(ctx).Info("forecast generated",
		zap.String("plan_id", planID),
		zap.Float64("funding_required", fc.FundingRequired),
		zap.Int("eligible_schemes", len(eligible)),
	)
	return &ForecastResult{Forecast: fc, Schemes: eligible}, nil
}
