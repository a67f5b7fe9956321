package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bryanwahyu/udyamsakhi/internal/application"
	aiapp "github.com/bryanwahyu/udyamsakhi/internal/application/ai"
	"github.com/bryanwahyu/udyamsakhi/internal/application/compliance"
	"github.com/bryanwahyu/udyamsakhi/internal/application/funding"
	"github.com/bryanwahyu/udyamsakhi/internal/application/learning"
	"github.com/bryanwahyu/udyamsakhi/internal/application/market"
	"github.com/bryanwahyu/udyamsakhi/internal/application/marketplaces"
	"github.com/bryanwahyu/udyamsakhi/internal/application/plans"
	"github.com/bryanwahyu/udyamsakhi/internal/application/uploads"
	"github.com/bryanwahyu/udyamsakhi/internal/application/users"
	"github.com/bryanwahyu/udyamsakhi/internal/auth"
	"github.com/bryanwahyu/udyamsakhi/internal/config"
	"github.com/bryanwahyu/udyamsakhi/internal/domain/ai"
	"github.com/bryanwahyu/udyamsakhi/internal/domain/marketplace"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/ai/anthropic"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/ai/gemini"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/ai/openai"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/mongo"
	mysqlp "github.com/bryanwahyu/udyamsakhi/internal/infra/db/mysql"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/postgres"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/repository"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/sqlite"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/export"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/udyamsakhi/internal/infra/storage"
	"github.com/bryanwahyu/udyamsakhi/internal/middleware"
)

type app struct {
	Services httpserver.Services
	Options  httpserver.Options
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func openDatabase(ctx context.Context, cfg *config.Config) (docstore.Database, error) {
	switch cfg.Database.Driver {
	case "mongo":
		return mongo.Open(ctx, cfg.Database.URI, cfg.Database.Name)
	case "mysql":
		return mysqlp.Open(ctx, cfg.MySQLDSN())
	case "postgres":
		return postgres.Open(ctx, cfg.PostgresDSN())
	case "sqlite":
		return sqlite.Open(ctx, cfg.Database.Path)
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
}

func newAIClient(ctx context.Context, cfg *config.Config) (ai.Client, error) {
	c := cfg.AI
	switch c.Provider {
	case "openai":
		return openai.NewClient(c.APIKey, c.Model, c.MaxTokens), nil
	case "anthropic":
		return anthropic.NewClient(c.APIKey, c.Model, c.MaxTokens), nil
	case "gemini":
		return gemini.NewClient(ctx, c.APIKey, c.Model, c.MaxTokens, c.SafetyThreshold)
	}
	return nil, fmt.Errorf("unknown ai provider %q", c.Provider)
}

// build connects every adapter and assembles the services.
func build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s connect: %w", cfg.Database.Driver, err)
	}
	a.closers = append(a.closers, func() { _ = db.Close() })
	if err := db.Ensure(ctx, repository.Specs...); err != nil {
		a.Close()
		return nil, err
	}

	client, err := newAIClient(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("ai client: %w", err)
	}

	metrics := middleware.NewMetrics()
	gateway := aiapp.NewService(client, cfg.AI.Timeout, metrics)
	clock := application.SystemClock{}
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	planRepo := repository.NewPlanRepository(db)
	userRepo := repository.NewUserRepository(db)
	m := cfg.Matcher

	svc := httpserver.Services{
		Users:  &users.Service{Repo: userRepo, Tokens: tokens, Clock: clock},
		Plans:  &plans.Service{Repo: planRepo, AI: gateway, Exporter: export.New(), Clock: clock},
		Market: &market.Service{Plans: planRepo, Reports: repository.NewMarketRepository(db), AI: gateway},
		Marketplaces: &marketplaces.Service{
			Repo:  repository.NewMarketplaceRepository(db),
			Plans: planRepo,
			Weights: marketplace.Weights{
				Industry:           m.IndustryWeight,
				ProductType:        m.ProductTypeWeight,
				TargetMarket:       m.TargetMarketWeight,
				RatingMultiplier:   m.RatingMultiplier,
				ExcellentThreshold: m.ExcellentThreshold,
				GoodThreshold:      m.GoodThreshold,
				TopN:               m.TopN,
			},
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
			{Name: "compliance_items", Run: svc.Compliance.Seed},
			{Name: "funding_schemes", Run: svc.Funding.Seed},
			{Name: "courses", Run: svc.Learning.SeedCourses},
			{Name: "mentors", Run: svc.Learning.SeedMentors},
		})
	}

	health := middleware.HealthSet{
		Checkers: map[string]middleware.HealthChecker{
			"database": middleware.CheckFunc(db.Ping),
		},
		Info: map[string]string{
			"database":    cfg.Database.Driver,
			"ai_provider": cfg.AI.Provider,
		},
	}

	// uploads are optional; without an endpoint the route is not mounted
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("minio init: %w", err)
		}
		svc.Uploads = &uploads.Service{
			Store:        store,
			MaxBytes:     cfg.Uploads.MaxBytes,
			AllowedTypes: cfg.Uploads.AllowedTypes,
		}
		health.Checkers["storage"] = store
	} else {
		log.Warn("minio endpoint not set, uploads disabled")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSecond)
	a.closers = append(a.closers, limiter.Close)

	a.Services = svc
	a.Options = httpserver.Options{
		Logger:         log,
		Tokens:         tokens,
		Limiter:        limiter,
		Metrics:        metrics,
		Health:         health,
		CORSOrigins:    cfg.Server.CORSOrigins,
		MaxUploadBytes: cfg.Uploads.MaxBytes,
	}
	log.Info("services ready",
		zap.String("db", cfg.Database.Driver),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.Bool("uploads", svc.Uploads != nil),
	)
	return a, nil
}
