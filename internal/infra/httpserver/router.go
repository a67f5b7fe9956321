package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/bryanwahyu/udyamsakhi/internal/application/compliance"
	"github.com/bryanwahyu/udyamsakhi/internal/application/funding"
	"github.com/bryanwahyu/udyamsakhi/internal/application/learning"
	"github.com/bryanwahyu/udyamsakhi/internal/application/market"
	"github.com/bryanwahyu/udyamsakhi/internal/application/marketplaces"
	"github.com/bryanwahyu/udyamsakhi/internal/application/plans"
	"github.com/bryanwahyu/udyamsakhi/internal/application/uploads"
	"github.com/bryanwahyu/udyamsakhi/internal/application/users"
	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
	"github.com/bryanwahyu/udyamsakhi/internal/logger"
	"github.com/bryanwahyu/udyamsakhi/internal/middleware"
	"github.com/bryanwahyu/udyamsakhi/internal/validate"
)

// Services are the use-cases the router exposes.
type Services struct {
	Users        *users.Service
	Plans        *plans.Service
	Market       *market.Service
	Marketplaces *marketplaces.Service
	Compliance   *compliance.Service
	Funding      *funding.Service
	Learning     *learning.Service
	Uploads      *uploads.Service
	// Seed fills every reference collection and reports the counts.
	Seed func(ctx context.Context) (map[string]int, error)
}

// Options configure the middleware chain.
type Options struct {
	Logger      *zap.Logger
	Tokens      middleware.TokenVerifier
	Limiter     *middleware.RateLimiter
	Metrics     *middleware.Metrics
	Health      middleware.HealthSet
	CORSOrigins []string
	// MaxUploadBytes caps the multipart body of /v1/uploads.
	MaxUploadBytes int64
}

const maxJSONBody = 1 << 20

type Router struct {
	svc Services
	opt Options
}

func NewRouter(svc Services, opt Options) http.Handler {
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	r := &Router{svc: svc, opt: opt}
	mux := chi.NewRouter()

	mux.Use(chimw.Recoverer)
	mux.Use(middleware.RequestLogger(opt.Logger))
	if opt.Metrics != nil {
		mux.Use(opt.Metrics.Middleware)
	}
	origins := opt.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	mux.Get("/health", middleware.HealthHandler(opt.Health))
	mux.Get("/livez", middleware.LivenessHandler)
	mux.Get("/readyz", middleware.ReadinessHandler(opt.Health))
	if opt.Metrics != nil {
		mux.Handle("/metrics", opt.Metrics.Handler())
	}

	mux.Route("/v1", func(v1 chi.Router) {
		// public
		v1.Post("/auth/register", r.wrap(r.handleRegister))
		v1.Post("/auth/login", r.wrap(r.handleLogin))
		v1.Post("/init", r.wrap(r.handleInit))
		v1.Get("/marketplaces", r.wrap(r.handleMarketplaces))
		v1.Get("/funding/schemes", r.wrap(r.handleFundingSchemes))
		v1.Get("/courses", r.wrap(r.handleCourses))
		v1.Get("/courses/{id}", r.wrap(r.handleCourse))
		v1.Get("/mentors", r.wrap(r.handleMentors))

		v1.Group(func(p chi.Router) {
			p.Use(middleware.JWTAuth(opt.Tokens))

			p.Get("/me", r.wrap(r.handleMe))
			p.Put("/me", r.wrap(r.handleUpdateMe))

			p.Get("/plans", r.wrap(r.handleListPlans))
			p.Get("/plans/{id}", r.wrap(r.handleGetPlan))
			p.Delete("/plans/{id}", r.wrap(r.handleDeletePlan))
			p.Put("/plans/{id}/sections/{section}", r.wrap(r.handleEditSection))
			p.Get("/plans/{id}/export", r.wrap(r.handleExportPlan))
			p.Get("/plans/{id}/market", r.wrap(r.handleListMarket))
			p.Get("/plans/{id}/market/{type}", r.wrap(r.handleGetMarket))
			p.Get("/plans/{id}/marketplaces/recommendations", r.wrap(r.handleRecommendMarketplaces))

			p.Get("/compliance/items", r.wrap(r.handleComplianceItems))
			p.Put("/compliance/items/{id}/progress", r.wrap(r.handleComplianceProgress))

			p.Post("/courses/{id}/enroll", r.wrap(r.handleEnroll))
			p.Post("/courses/{id}/lessons/{lessonId}/complete", r.wrap(r.handleCompleteLesson))
			p.Get("/progress", r.wrap(r.handleProgress))

			if svc.Uploads != nil {
				p.Post("/uploads", r.wrap(r.handleUpload))
			}

			// AI-backed routes share the per-user limiter
			p.Group(func(ai chi.Router) {
				if opt.Limiter != nil {
					ai.Use(middleware.RateLimit(opt.Limiter))
				}
				ai.Post("/plans", r.wrap(r.handleCreatePlan))
				ai.Post("/plans/{id}/sections/{section}/regenerate", r.wrap(r.handleRegenerateSection))
				ai.Post("/plans/{id}/market/{type}", r.wrap(r.handleGenerateMarket))
				ai.Post("/plans/{id}/forecast", r.wrap(r.handleForecast))
				ai.Post("/compliance/items/generate", r.wrap(r.handleGenerateCompliance))
				ai.Post("/compliance/chat", r.wrap(r.handleComplianceChat))
			})
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap is the single place where error kinds become HTTP statuses. Callers
// only ever see the sanitized message; the cause is logged.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		kind := apperr.KindOf(err)
		status, msg := statusFor(kind), apperr.Message(err)

		log := logger.FromContext(req.Context()).With(
			zap.String("kind", kind.String()),
			zap.Int("status", status),
			zap.Error(err),
		)
		if status >= http.StatusInternalServerError {
			log.Error("request failed")
		} else {
			log.Debug("request rejected")
		}
		writeJSON(w, status, map[string]string{"error": msg})
	}
}

func statusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindRateLimited:
		return http.StatusTooManyRequests
	case apperr.KindUpstream, apperr.KindParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func ok(w http.ResponseWriter, v any) error {
	writeJSON(w, http.StatusOK, v)
	return nil
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, req *http.Request, v any) error {
	const op = "http.decode"
	body := http.MaxBytesReader(w, req.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return apperr.Validation(op, "request body too large")
		}
		return apperr.Wrap(apperr.KindValidation, op, "invalid JSON body", err)
	}
	return nil
}

// pathID reads and validates an id path parameter.
func pathID(req *http.Request, name string) (string, error) {
	id := chi.URLParam(req, name)
	if err := validate.ID(id); err != nil {
		return "", apperr.Validationf("http.pathID", "invalid %s", name)
	}
	return id, nil
}

func userID(req *http.Request) string { return middleware.UserID(req.Context()) }
