package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/salesflow/salesflow/internal/config"
	"github.com/salesflow/salesflow/internal/crm"
	"github.com/salesflow/salesflow/internal/importer"
	"github.com/salesflow/salesflow/internal/logging"
	_ "github.com/salesflow/salesflow/internal/schema" // Register entity definitions
	"github.com/salesflow/salesflow/internal/store"
	"github.com/salesflow/salesflow/internal/web"
)

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store_backend", cfg.Store.Backend,
		"import_max_concurrent", cfg.Import.MaxConcurrent,
		"commit_width", cfg.Import.CommitWidth,
	)

	ctx := context.Background()

	creator, closeStore, err := buildCreator(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize record store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	pipeline := importer.NewPipeline(creator, cfg.Import.CommitWidth)
	limiter := importer.NewLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime)
	server := web.NewServer(pipeline, limiter, cfg)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if limiter.ActiveCount() > 0 {
			slog.Info("waiting for imports to complete", "active", limiter.ActiveCount())
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("imports did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// buildCreator selects the persistence collaborator from config: the
// hosted data-service client by default, PostgreSQL when configured.
func buildCreator(ctx context.Context, cfg *config.Config) (crm.RecordCreator, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		poolCfg, err := pgxpool.ParseConfig(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		poolCfg.MaxConns = int32(cfg.Store.MaxConns)

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		slog.Info("connected to database", "max_conns", cfg.Store.MaxConns)
		return store.New(pool), pool.Close, nil

	default:
		client := crm.NewClient(cfg.Store.APIBaseURL, cfg.Store.APIKey,
			crm.WithTimeout(cfg.Store.APITimeout))
		slog.Info("using hosted data service", "base_url", cfg.Store.APIBaseURL)
		return client, func() {}, nil
	}
}
