package compliance

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bryanwahyu/udyamsakhi/internal/application"
	aiapp "github.com/bryanwahyu/udyamsakhi/internal/application/ai"
	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
	domain "github.com/bryanwahyu/udyamsakhi/internal/domain/compliance"
	"github.com/bryanwahyu/udyamsakhi/internal/domain/user"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/ai/prompt"
	"github.com/bryanwahyu/udyamsakhi/internal/logger"
)

// Service mengelola compliance items, progress per user, dan legal chat.
type Service struct {
	Items    domain.ItemRepository
	Progress domain.ProgressRepository
	Users    user.Repository
	AI       *aiapp.Service
	Clock    application.Clock

	seedMu sync.Mutex
}

func (s *Service) Seed(ctx context.Context) (int, error) {
	return application.SeedIfEmpty(ctx, &s.seedMu, s.Items, domain.Defaults)
}

// List returns the items applicable to the caller's business type and state,
// each joined with the caller's progress.
func (s *Service) List(ctx context.Context, userID, category string) ([]domain.ItemWithProgress, error) {
	u, err := s.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Seed(ctx); err != nil {
		return nil, err
	}
	items, err := s.Items.List(ctx, category)
	if err != nil {
		return nil, err
	}
	progress, err := s.Progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byItem := make(map[string]*domain.Progress, len(progress))
	for _, p := range progress {
		byItem[p.ItemID] = p
	}

	out := make([]domain.ItemWithProgress, 0, len(items))
	for _, it := range items {
		if !it.AppliesTo(u.BusinessType, u.State) {
			continue
		}
		out = append(out, domain.ItemWithProgress{Item: it, Progress: byItem[it.ID]})
	}
	domain.SortItems(out)
	return out, nil
}

type generatedItem struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Priority    string        `json:"priority"`
	Steps       []string      `json:"steps"`
	Fees        string        `json:"fees"`
	Timeline    string        `json:"timeline"`
	Links       []domain.Link `json:"links"`
}

type generatedItems struct {
	Items []generatedItem `json:"items"`
}

func (g *generatedItems) EnsureArrays() {
	if g.Items == nil {
		g.Items = []generatedItem{}
	}
	for i := range g.Items {
		if g.Items[i].Steps == nil {
			g.Items[i].Steps = []string{}
		}
		if g.Items[i].Links == nil {
			g.Items[i].Links = []domain.Link{}
		}
	}
}

// GenerateResult reports what a generation run added.
type GenerateResult struct {
	Added   []*domain.Item `json:"added"`
	Skipped int            `json:"skipped"`
}

// Generate asks the model for requirements of a business type and state and
// stores the ones whose title is not known yet. Empty arguments fall back to
// the caller's profile.
func (s *Service) Generate(ctx context.Context, userID, businessType, state string) (*GenerateResult, error) {
	u, err := s.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	businessType = firstNonEmpty(businessType, u.BusinessType)
	state = firstNonEmpty(state, u.State)

	existing, err := s.Items.List(ctx, "")
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(existing))
	titles := make([]string, 0, len(existing))
	for _, it := range existing {
		known[titleKey(it.Title)] = true
		titles = append(titles, it.Title)
	}

	gen, err := aiapp.GenerateJSON[generatedItems](ctx, s.AI, "compliance",
		prompt.ComplianceItems(businessType, state, titles), []string{"items"})
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	res := &GenerateResult{Added: []*domain.Item{}}
	for _, g := range gen.Items {
		key := titleKey(g.Title)
		if key == "" || known[key] {
			res.Skipped++
			continue
		}
		known[key] = true
		res.Added = append(res.Added, &domain.Item{
			Title:         strings.TrimSpace(g.Title),
			Description:   g.Description,
			Category:      strings.ToLower(strings.TrimSpace(firstNonEmpty(g.Category, "other"))),
			Priority:      domain.ParsePriority(g.Priority),
			BusinessTypes: []string{firstNonEmpty(businessType, domain.MatchAll)},
			States:        []string{firstNonEmpty(state, domain.MatchAll)},
			Steps:         g.Steps,
			Fees:          g.Fees,
			Timeline:      g.Timeline,
			Links:         g.Links,
			Source:        domain.SourceAI,
			CreatedAt:     now,
		})
	}
	if len(res.Added) > 0 {
		if err := s.Items.InsertMany(ctx, res.Added); err != nil {
			return nil, err
		}
	}
	logger.FromContext(ctx).Info("compliance items generated",
		zap.Int("added", len(res.Added)),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

// ProgressInput is the body of a progress update.
type ProgressInput struct {
	Status         string `json:"status"`
	CompletedSteps []int  `json:"completedSteps"`
	Notes          string `json:"notes"`
}

// UpdateProgress records the caller's state on one item.
func (s *Service) UpdateProgress(ctx context.Context, userID, itemID string, in ProgressInput) (*domain.Progress, error) {
	const op = "compliance.UpdateProgress"
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, apperr.Validation(op, err.Error())
	}
	item, err := s.Items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	steps, err := item.ValidateSteps(in.CompletedSteps)
	if err != nil {
		return nil, apperr.Validation(op, err.Error())
	}
	return s.Progress.Upsert(ctx, &domain.Progress{
		UserID:         userID,
		ItemID:         item.ID,
		Status:         status,
		CompletedSteps: steps,
		Notes:          strings.TrimSpace(in.Notes),
		UpdatedAt:      s.Clock.Now(),
	})
}

// Answer is a legal chat reply. It is not stored.
type Answer struct {
	Answer     string   `json:"answer"`
	References []string `json:"references"`
	Disclaimer string   `json:"disclaimer"`
}

const defaultDisclaimer = "This is general information, not legal advice. Please confirm with a qualified professional."

func (a *Answer) EnsureArrays() {
	if a.References == nil {
		a.References = []string{}
	}
}

// Chat answers a compliance question in the context of the caller's profile.
func (s *Service) Chat(ctx context.Context, userID, question string) (*Answer, error) {
	const op = "compliance.Chat"
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperr.Validation(op, "question is required")
	}
	u, err := s.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	ans, err := aiapp.GenerateJSON[Answer](ctx, s.AI, "chat",
		prompt.LegalChat(question, u.BusinessType, u.State), []string{"answer"})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(ans.Disclaimer) == "" {
		ans.Disclaimer = defaultDisclaimer
	}
	return &ans, nil
}

func titleKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
