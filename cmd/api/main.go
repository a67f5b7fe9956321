package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryanwahyu/udyamsakhi/internal/config"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/repository"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/httpserver"
	"github.com/bryanwahyu/udyamsakhi/internal/logger"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "udyamsakhi",
		Short:         "UdyamSakhi API for women entrepreneurs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// path config.yaml
	defPath := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defPath = v
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defPath, "path to config.yaml")

	load := func() (*config.Config, *zap.Logger, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("config load: %w", err)
		}
		log, err := logger.Init(logger.Config{
			Level:       cfg.Log.Level,
			Environment: cfg.Log.Env,
			ServiceName: "udyamsakhi",
		})
		if err != nil {
			return nil, nil, fmt.Errorf("logger init: %w", err)
		}
		return cfg, log, nil
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return runServer(cmd.Context(), cfg, log)
		},
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Insert reference data into empty collections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			app, err := build(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer app.Close()
			counts, err := app.Services.Seed(cmd.Context())
			if err != nil {
				return err
			}
			for name, n := range counts {
				log.Info("seeded", zap.String("collection", name), zap.Int("inserted", n))
			}
			return nil
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create collections and indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.Ensure(cmd.Context(), repository.Specs...); err != nil {
				return err
			}
			log.Info("collections ensured", zap.String("driver", cfg.Database.Driver), zap.Int("count", len(repository.Specs)))
			return nil
		},
	}

	root.AddCommand(serve, seed, migrate)
	// no subcommand means serve
	root.RunE = serve.RunE
	return root
}

func runServer(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	app, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	handler := httpserver.NewRouter(app.Services, app.Options)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-stop:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx2, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Error("shutdown error", zap.Error(err))
		return err
	}
	return nil
}
