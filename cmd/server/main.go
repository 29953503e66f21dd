package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JonMunkholm/customerlookup/internal/config"
	"github.com/JonMunkholm/customerlookup/internal/core"
	"github.com/JonMunkholm/customerlookup/internal/database"
	"github.com/JonMunkholm/customerlookup/internal/logging"
	"github.com/JonMunkholm/customerlookup/internal/source"
	"github.com/JonMunkholm/customerlookup/internal/web"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if it exists; real environment variables win.
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var audit core.AuditStore
	if cfg.Audit.Enabled() {
		pool, err := database.Connect(ctx, cfg.Audit)
		if err != nil {
			return err
		}
		defer pool.Close()

		if u, err := url.Parse(cfg.Audit.DatabaseURL); err == nil {
			slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
		}

		store := database.NewLookupStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		audit = store
	} else {
		slog.Info("lookup audit disabled (DATABASE_URL not set)")
	}

	src, err := source.New(ctx, cfg.Sheet)
	if err != nil {
		return err
	}

	service, err := core.NewService(src, audit, cfg.Lookup)
	if err != nil {
		return err
	}
	slog.Info("sheet source configured", "source", service.SourceDescription())

	server := web.NewServer(service, cfg)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "addr", cfg.Server.Addr())
		return server.Start()
	})

	g.Go(func() error {
		service.StartRetentionScheduler(gctx, core.RetentionConfig{
			RetentionDays: cfg.Audit.RetentionDays,
			CheckInterval: cfg.Audit.PurgeInterval,
		})
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := service.LimiterStatus(); status.Active > 0 {
			slog.Info("waiting for lookups to complete", "active", status.Active)
			if err := service.WaitForLookups(shutdownCtx); err != nil {
				slog.Warn("lookups did not complete in time", "error", err)
			}
		}

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
