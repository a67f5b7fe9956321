package marketplaces

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bryanwahyu/udyamsakhi/internal/application"
	domain "github.com/bryanwahyu/udyamsakhi/internal/domain/marketplace"
	"github.com/bryanwahyu/udyamsakhi/internal/domain/plan"
	"github.com/bryanwahyu/udyamsakhi/internal/logger"
)

type Service struct {
	Repo    domain.Repository
	Plans   plan.Repository
	Weights domain.Weights

	seedMu sync.Mutex
}

// Seed inserts the default catalog when empty and returns the count.
func (s *Service) Seed(ctx context.Context) (int, error) {
	return application.SeedIfEmpty(ctx, &s.seedMu, s.Repo, domain.Defaults)
}

// List returns the whole catalog, seeding it on first use.
func (s *Service) List(ctx context.Context) ([]*domain.Marketplace, error) {
	if _, err := s.Seed(ctx); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx)
}

// Recommend ranks the catalog against one of the caller's plans.
func (s *Service) Recommend(ctx context.Context, userID, planID string) ([]domain.Match, error) {
	p, err := s.Plans.Get(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matches := domain.Rank(s.Weights, domain.Profile{
		Industry:         p.Industry,
		ProductsServices: p.ProductsServices,
		TargetMarket:     p.TargetMarket,
	}, all)

	logger.FromContext(ctx).Debug("marketplaces ranked",
		zap.String("plan_id", planID),
		zap.Int("candidates", len(all)),
		zap.Int("matches", len(matches)),
	)
	return matches, nil
}
