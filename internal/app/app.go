// Package app wires configuration into a running dashboard service.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"labor-dashboard/internal/api"
	"labor-dashboard/internal/api/handler"
	"labor-dashboard/internal/config"
	"labor-dashboard/internal/dashboard"
	"labor-dashboard/internal/metrics"
	"labor-dashboard/internal/source"
	"labor-dashboard/internal/store"
	"labor-dashboard/pkg/router"
)

// App holds every long-lived component of the server.
type App struct {
	Config  config.Config
	Service *dashboard.Service
	Router  *router.Router
	Metrics *metrics.Recorder
	Logger  *zap.Logger

	closers []func()
}

// New builds the application described by cfg. A backend that cannot be
// reached after its retries is an error; the caller decides whether to
// fall back to backend "none".
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	a := &App{Config: cfg, Logger: logger}

	rec, err := metrics.New()
	if err != nil {
		return nil, err
	}
	a.Metrics = rec

	catalog, err := source.NewCatalog()
	if err != nil {
		return nil, err
	}
	if cfg.Fallback.Dir != "" {
		n, err := catalog.LoadDir(ctx, cfg.Fallback.Dir)
		if err != nil {
			return nil, err
		}
		logger.Info("fallback datasets loaded", zap.String("dir", cfg.Fallback.Dir), zap.Int("files", n))
	}

	fetcher, err := a.openBackend(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	loader := source.NewLoader(fetcher, catalog, source.LoaderConfig{
		FetchTimeout: cfg.Backend.FetchTimeout,
		CacheTTL:     cfg.Backend.CacheTTL,
	}, logger, rec)
	a.Service = dashboard.NewService(loader, dashboard.Default(), cfg.Caps, logger, rec)

	a.Router = router.New(logger)
	api.RegisterRoutes(a.Router, handler.New(a.Service, logger), rec)
	return a, nil
}

func (a *App) openBackend(ctx context.Context) (source.Fetcher, error) {
	b := a.Config.Backend
	switch b.Kind {
	case config.BackendPostgres:
		pg, err := store.OpenPostgres(ctx, b.DSN, store.DefaultRegistry(), b.MaxRows, b.Retry, a.Logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pg.Close)
		return pg, nil
	case config.BackendSQLite:
		db, err := store.OpenSQLite(ctx, b.DSN, b.MaxRows, b.Retry, a.Logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() {
			if err := db.Close(); err != nil {
				a.Logger.Warn("failed to close sqlite", zap.Error(err))
			}
		})
		return db, nil
	}
	return nil, nil
}

// Run serves HTTP until ctx is done.
func (a *App) Run(ctx context.Context) error {
	s := a.Config.Server
	return a.Router.Start(ctx, s.Addr, router.Timeouts{
		Read:     s.ReadTimeout,
		Write:    s.WriteTimeout,
		Shutdown: s.ShutdownTimeout,
	})
}

// Close releases backend connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
