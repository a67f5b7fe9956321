package plans

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bryanwahyu/udyamsakhi/internal/application"
	aiapp "github.com/bryanwahyu/udyamsakhi/internal/application/ai"
	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
	domain "github.com/bryanwahyu/udyamsakhi/internal/domain/plan"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/ai/prompt"
	"github.com/bryanwahyu/udyamsakhi/internal/logger"
)

// Service implements use-cases untuk BusinessPlan
type Service struct {
	Repo     domain.Repository
	AI       *aiapp.Service
	Exporter domain.Exporter
	Clock    application.Clock
}

type generatedSections struct {
	ExecutiveSummary     string `json:"executiveSummary"`
	MarketAnalysis       string `json:"marketAnalysis"`
	Operations           string `json:"operations"`
	Marketing            string `json:"marketing"`
	FinancialProjections string `json:"financialProjections"`
}

var sectionsRequired = []string{"executiveSummary", "marketAnalysis", "operations", "marketing", "financialProjections"}

type sectionContent struct {
	Content string `json:"content"`
}

// Create generates all five sections in one AI call and stores the plan.
func (s *Service) Create(ctx context.Context, userID string, in domain.Input) (*domain.BusinessPlan, error) {
	const op = "plans.Create"
	if missing := in.Missing(); len(missing) > 0 {
		return nil, apperr.Validationf(op, "missing required fields: %s", strings.Join(missing, ", "))
	}

	gen, err := aiapp.GenerateJSON[generatedSections](ctx, s.AI, "plan", prompt.BusinessPlan(in), sectionsRequired)
	if err != nil {
		return nil, err
	}

	contents := map[domain.SectionName]string{
		domain.SectionExecutiveSummary:     gen.ExecutiveSummary,
		domain.SectionMarketAnalysis:       gen.MarketAnalysis,
		domain.SectionOperations:           gen.Operations,
		domain.SectionMarketing:            gen.Marketing,
		domain.SectionFinancialProjections: gen.FinancialProjections,
	}
	// same rule as regeneration: a blank section is an unusable answer
	for _, name := range domain.SectionNames {
		if strings.TrimSpace(contents[name]) == "" {
			return nil, apperr.Wrap(apperr.KindParse, op, aiapp.ErrParse.Error(), aiapp.ErrParse)
		}
	}

	now := s.Clock.Now()
	p := &domain.BusinessPlan{
		UserID:            userID,
		BusinessName:      strings.TrimSpace(in.BusinessName),
		Industry:          strings.TrimSpace(in.Industry),
		BusinessIdea:      strings.TrimSpace(in.BusinessIdea),
		TargetMarket:      strings.TrimSpace(in.TargetMarket),
		ProductsServices:  strings.TrimSpace(in.ProductsServices),
		Competition:       strings.TrimSpace(in.Competition),
		MarketSize:        strings.TrimSpace(in.MarketSize),
		InitialInvestment: strings.TrimSpace(in.InitialInvestment),
		Location:          strings.TrimSpace(in.Location),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	p.InitSections(contents, now)

	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("plan created", zap.String("plan_id", p.ID))
	return p, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*domain.BusinessPlan, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*domain.BusinessPlan, error) {
	return s.Repo.Get(ctx, userID, id)
}

// Delete removes only the plan; cached reports stay.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.Repo.Delete(ctx, userID, id)
}

func parseSection(op, name string) (domain.SectionName, error) {
	sec, err := domain.ParseSectionName(name)
	if err != nil {
		return "", apperr.Validation(op, err.Error())
	}
	return sec, nil
}

// RegenerateSection asks the model for a new version of one section.
func (s *Service) RegenerateSection(ctx context.Context, userID, id, section, feedback string) (*domain.BusinessPlan, error) {
	const op = "plans.RegenerateSection"
	name, err := parseSection(op, section)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	gen, err := aiapp.GenerateJSON[sectionContent](ctx, s.AI, "section", prompt.RegenerateSection(p, name, feedback), []string{"content"})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(gen.Content) == "" {
		return nil, apperr.Wrap(apperr.KindParse, op, aiapp.ErrParse.Error(), aiapp.ErrParse)
	}
	return s.apply(ctx, p, name, gen.Content, domain.SourceAI)
}

// EditSection stores a manual edit with the same versioning as regeneration.
func (s *Service) EditSection(ctx context.Context, userID, id, section, content string) (*domain.BusinessPlan, error) {
	const op = "plans.EditSection"
	name, err := parseSection(op, section)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation(op, "content is required")
	}
	p, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, p, name, content, domain.SourceManual)
}

func (s *Service) apply(ctx context.Context, p *domain.BusinessPlan, name domain.SectionName, content, source string) (*domain.BusinessPlan, error) {
	sec, err := p.ApplySection(name, content, source, s.Clock.Now())
	if err != nil {
		return nil, apperr.Validation("plans.apply", err.Error())
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("plan section updated",
		zap.String("plan_id", p.ID),
		zap.String("section", string(name)),
		zap.Int("version", sec.Version),
		zap.String("source", source),
	)
	return p, nil
}

// Export renders the plan as md, html or xlsx.
func (s *Service) Export(ctx context.Context, userID, id, format string) ([]byte, string, error) {
	const op = "plans.Export"
	switch format {
	case "", "md":
		format = "md"
	case "html", "xlsx":
	default:
		return nil, "", apperr.Validationf(op, "invalid format %q (allowed: md, html, xlsx)", format)
	}
	p, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	body, ctype, err := s.Exporter.Export(p, format)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, op, "export failed", err)
	}
	return body, ctype, nil
}
