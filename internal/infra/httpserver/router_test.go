package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/udyamsakhi/internal/application"
	aiapp "github.com/bryanwahyu/udyamsakhi/internal/application/ai"
	"github.com/bryanwahyu/udyamsakhi/internal/application/ai/aitest"
	"github.com/bryanwahyu/udyamsakhi/internal/application/compliance"
	"github.com/bryanwahyu/udyamsakhi/internal/application/funding"
	"github.com/bryanwahyu/udyamsakhi/internal/application/learning"
	"github.com/bryanwahyu/udyamsakhi/internal/application/market"
	"github.com/bryanwahyu/udyamsakhi/internal/application/marketplaces"
	"github.com/bryanwahyu/udyamsakhi/internal/application/plans"
	"github.com/bryanwahyu/udyamsakhi/internal/application/users"
	"github.com/bryanwahyu/udyamsakhi/internal/auth"
	"github.com/bryanwahyu/udyamsakhi/internal/domain/marketplace"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/repository"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/sqlite/sqlitetest"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/export"
	"github.com/bryanwahyu/udyamsakhi/internal/middleware"
)

const allSections = `{"executiveSummary":"es","marketAnalysis":"ma","operations":"op","marketing":"mk","financialProjections":"fp"}`

type harness struct {
	t       *testing.T
	handler http.Handler
	ai      *aitest.Client
}

func newHarness(t *testing.T, limiter *middleware.RateLimiter) *harness {
	t.Helper()
	db := sqlitetest.Open(t)
	client := aitest.New(allSections)
	gateway := aiapp.NewService(client, time.Second, nil)
	clock := application.FixedClock{T: time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)}
	tokens := auth.NewTokens("router-secret", time.Hour)

	planRepo := repository.NewPlanRepository(db)
	userRepo := repository.NewUserRepository(db)
	svc := Services{
		Users:  &users.Service{Repo: userRepo, Tokens: tokens, Clock: clock},
		Plans:  &plans.Service{Repo: planRepo, AI: gateway, Exporter: export.New(), Clock: clock},
		Market: &market.Service{Plans: planRepo, Reports: repository.NewMarketRepository(db), AI: gateway},
		Marketplaces: &marketplaces.Service{
			Repo: repository.NewMarketplaceRepository(db), Plans: planRepo, Weights: marketplace.DefaultWeights,
		},
		Compliance: &compliance.Service{
			Items:    repository.NewComplianceItemRepository(db),
			Progress: repository.NewComplianceProgressRepository(db),
			Users:    userRepo,
			AI:       gateway,
			Clock:    clock,
		},
		Funding: &funding.Service{Schemes: repository.NewFundingRepository(db), Plans: planRepo, AI: gateway},
		Learning: &learning.Service{
			Courses:  repository.NewCourseRepository(db),
			Mentors:  repository.NewMentorRepository(db),
			Progress: repository.NewCourseProgressRepository(db),
			Clock:    clock,
		},
	}
	svc.Seed = func(ctx context.Context) (map[string]int, error) {
		return application.RunSeeds(ctx, []application.SeedStep{
			{Name: "marketplaces", Run: svc.Marketplaces.Seed},
			{Name: "courses", Run: svc.Learning.SeedCourses},
		})
	}
	h := NewRouter(svc, Options{Tokens: tokens, Limiter: limiter, Metrics: middleware.NewMetrics()})
	return &harness{t: t, handler: h, ai: client}
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(h.t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) register(email string) string {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": email, "password": "password123", "name": "Lakshmi",
		"businessType": "food", "state": "Kerala",
	})
	require.Equal(h.t, http.StatusCreated, rec.Code, rec.Body.String())
	var sess struct {
		Token string `json:"token"`
	}
	require.NoError(h.t, json.Unmarshal(rec.Body.Bytes(), &sess))
	return sess.Token
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestAuthFlow(t *testing.T) {
	h := newHarness(t, nil)
	token := h.register("lakshmi@example.in")

	rec := h.do(http.MethodGet, "/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(http.MethodGet, "/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "lakshmi@example.in", me["email"])
	assert.NotContains(t, rec.Body.String(), "password")

	rec = h.do(http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": "lakshmi@example.in", "password": "password123", "name": "Again",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": "lakshmi@example.in", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeBody[map[string]string](t, rec)["error"])

	rec = h.do(http.MethodPut, "/v1/me", token, map[string]string{"state": "Goa"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Goa", decodeBody[map[string]any](t, rec)["state"])
}

func TestPlanLifecycle(t *testing.T) {
	h := newHarness(t, nil)
	token := h.register("meena@example.in")

	rec := h.do(http.MethodPost, "/v1/plans", token, map[string]string{"businessName": "Only name"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodPost, "/v1/plans", token, map[string]string{
		"businessName": "Meena Pickles",
		"industry":     "Food",
		"businessIdea": "Homemade mango pickles",
		"targetMarket": "Families in Kochi",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[map[string]any](t, rec)
	id := created["id"].(string)

	rec = h.do(http.MethodPut, "/v1/plans/"+id+"/sections/marketing", token, map[string]string{"content": "Instagram reels"})
	require.Equal(t, http.StatusOK, rec.Code)
	var edited struct {
		Sections struct {
			Marketing struct {
				Content string `json:"content"`
				Version int    `json:"version"`
			} `json:"marketing"`
		} `json:"sections"`
		VersionHistory []map[string]any `json:"versionHistory"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &edited))
	assert.Equal(t, 2, edited.Sections.Marketing.Version)
	require.Len(t, edited.VersionHistory, 1)
	assert.Equal(t, "manual", edited.VersionHistory[0]["source"])

	rec = h.do(http.MethodPut, "/v1/plans/"+id+"/sections/pricing", token, map[string]string{"content": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodGet, "/v1/plans/"+id+"/export?format=md", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Meena Pickles")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "plan-"+id+".md")

	rec = h.do(http.MethodGet, "/v1/plans/"+id+"/export?format=pdf", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	other := h.register("someone@example.in")
	rec = h.do(http.MethodGet, "/v1/plans/"+id, other, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodDelete, "/v1/plans/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = h.do(http.MethodGet, "/v1/plans", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestMarketReportErrors(t *testing.T) {
	h := newHarness(t, nil)
	token := h.register("asha@example.in")
	rec := h.do(http.MethodPost, "/v1/plans", token, map[string]string{
		"businessName": "Asha Tailoring", "industry": "Textiles",
		"businessIdea": "Custom blouses", "targetMarket": "Brides",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody[map[string]any](t, rec)["id"].(string)

	rec = h.do(http.MethodPost, "/v1/plans/"+id+"/market/forecast", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodGet, "/v1/plans/"+id+"/market/analysis", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	h.ai.Responses = []string{"I cannot help with that."}
	rec = h.do(http.MethodPost, "/v1/plans/"+id+"/market/analysis", token, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "could not parse AI response", decodeBody[map[string]string](t, rec)["error"])

	rec = h.do(http.MethodGet, "/v1/plans/"+id+"/market", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestPublicCatalogAndInit(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(http.MethodPost, "/v1/init", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	seeded := decodeBody[map[string]map[string]int](t, rec)["seeded"]
	assert.Equal(t, len(marketplace.Defaults()), seeded["marketplaces"])

	rec = h.do(http.MethodPost, "/v1/init", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeBody[map[string]map[string]int](t, rec)["seeded"]["marketplaces"])

	rec = h.do(http.MethodGet, "/v1/marketplaces", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]map[string]any](t, rec), len(marketplace.Defaults()))

	rec = h.do(http.MethodGet, "/v1/courses?category=finance", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody[[]map[string]any](t, rec))

	rec = h.do(http.MethodGet, "/v1/courses/no-such-course", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodGet, "/v1/courses/bad$id", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAIRoutesAreRateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, 1)
	t.Cleanup(limiter.Close)
	h := newHarness(t, limiter)
	token := h.register("rani@example.in")

	body := map[string]string{"question": "Do I need GST registration?"}
	h.ai.Responses = []string{`{"answer":"Yes, above the threshold."}`}

	rec := h.do(http.MethodPost, "/v1/compliance/chat", token, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Yes, above the threshold.", decodeBody[map[string]any](t, rec)["answer"])

	rec = h.do(http.MethodPost, "/v1/compliance/chat", token, body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, 1, h.ai.Calls())

	// non-AI routes are not limited
	rec = h.do(http.MethodGet, "/v1/compliance/items", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBadJSONIsValidationError(t *testing.T) {
	h := newHarness(t, nil)
	rec := h.do(http.MethodPost, "/v1/auth/login", "", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON body", decodeBody[map[string]string](t, rec)["error"])
}

func TestOperationalEndpoints(t *testing.T) {
	h := newHarness(t, nil)

	for _, path := range []string{"/health", "/livez", "/readyz"} {
		rec := h.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	h.do(http.MethodGet, "/v1/marketplaces", "", nil)
	rec := h.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `route="/v1/marketplaces"`))
}

func TestStatusFor(t *testing.T) {
	h := newHarness(t, nil)
	token := h.register("uma@example.in")
	h.ai.Err = assert.AnError

	rec := h.do(http.MethodPost, "/v1/compliance/chat", token, map[string]string{"question": "Trademark?"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "AI error", decodeBody[map[string]string](t, rec)["error"])
}
