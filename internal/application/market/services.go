package market

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	aiapp "github.com/bryanwahyu/udyamsakhi/internal/application/ai"
	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
	domain "github.com/bryanwahyu/udyamsakhi/internal/domain/market"
	"github.com/bryanwahyu/udyamsakhi/internal/domain/plan"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/ai/prompt"
	"github.com/bryanwahyu/udyamsakhi/internal/logger"
)

// Service generates and caches market reports per (user, plan, type).
type Service struct {
	Plans   plan.Repository
	Reports domain.Repository
	AI      *aiapp.Service
}

func parseType(op, s string) (domain.ReportType, error) {
	rt, err := domain.ParseReportType(s)
	if err != nil {
		return "", apperr.Validation(op, err.Error())
	}
	return rt, nil
}

// Generate runs prompt, call, normalize and upsert in order. Any failure
// before the upsert leaves the cached report untouched.
func (s *Service) Generate(ctx context.Context, userID, planID, reportType string) (*domain.Data, error) {
	const op = "market.Generate"
	rt, err := parseType(op, reportType)
	if err != nil {
		return nil, err
	}
	p, err := s.Plans.Get(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	var report any
	switch rt {
	case domain.ReportAnalysis:
		report, err = aiapp.GenerateJSON[domain.Analysis](ctx, s.AI, string(rt),
			prompt.MarketAnalysis(p), domain.AnalysisRequired)

	case domain.ReportRecommendations:
		analysis, perr := s.prior(ctx, userID, planID, domain.ReportAnalysis)
		if perr != nil {
			return nil, perr
		}
		report, err = aiapp.GenerateJSON[domain.Recommendations](ctx, s.AI, string(rt),
			prompt.Recommendations(p, analysis), domain.RecommendationsRequired)

	case domain.ReportStrategies:
		analysis, perr := s.prior(ctx, userID, planID, domain.ReportAnalysis)
		if perr != nil {
			return nil, perr
		}
		recs, perr := s.prior(ctx, userID, planID, domain.ReportRecommendations)
		if perr != nil {
			return nil, perr
		}
		report, err = aiapp.GenerateJSON[domain.Strategies](ctx, s.AI, string(rt),
			prompt.Strategies(p, analysis, recs), domain.StrategiesRequired)
	}
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, op, "encode report", err)
	}
	stored, err := s.Reports.Upsert(ctx, userID, planID, rt, payload)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("market report stored",
		zap.String("plan_id", planID),
		zap.String("type", string(rt)),
		zap.Int64("revision", stored.Revision),
	)
	return stored, nil
}

// prior returns the cached payload of another report type, nil if none.
func (s *Service) prior(ctx context.Context, userID, planID string, rt domain.ReportType) (json.RawMessage, error) {
	d, err := s.Reports.Get(ctx, userID, planID, rt)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.Payload, nil
}

func (s *Service) Get(ctx context.Context, userID, planID, reportType string) (*domain.Data, error) {
	rt, err := parseType("market.Get", reportType)
	if err != nil {
		return nil, err
	}
	return s.Reports.Get(ctx, userID, planID, rt)
}

func (s *Service) List(ctx context.Context, userID, planID string) ([]*domain.Data, error) {
	return s.Reports.ListByPlan(ctx, userID, planID)
}
