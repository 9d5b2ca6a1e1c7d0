package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/relaypage/binding"
	"github.com/ncobase/relaypage/config"
	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/logging/logger"
	"github.com/ncobase/relaypage/logging/observes"
	"github.com/ncobase/relaypage/paging"
	"github.com/ncobase/relaypage/query"
	"github.com/ncobase/relaypage/version"
	"github.com/sirupsen/logrus"
)

// App represents the main application.
type App struct {
	config  *config.Config
	server  *config.Server
	logger  *logger.Logger
	data    *data.Data
	handler *binding.Handler
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, srv *config.Server, l *logger.Logger, d *data.Data, h *binding.Handler) *App {
	return &App{config: cfg, server: srv, logger: l, data: d, handler: h}
}

func provideHandler(d *data.Data, p *config.Paging) *binding.Handler {
	if p == nil {
		return binding.NewHandler(d)
	}
	return binding.NewHandler(d, binding.WithLimits(p.Limits()), binding.WithTieBreakField(p.TieBreakField))
}

// Resolve reads one page of the named collection.
func (a *App) Resolve(ctx context.Context, name string, args paging.Args, filter query.Expr, opts paging.Options[data.Document, data.Document]) (*paging.Connection[data.Document], error) {
	coll, err := a.data.Collection(ctx, name)
	if err != nil {
		return nil, err
	}
	if p := a.config.Paging; p != nil {
		opts.Limits = p.Limits()
		if opts.TieBreakField == "" {
			opts.TieBreakField = p.TieBreakField
		}
	}
	return paging.Resolve[data.Document](ctx, args, coll, filter, &opts)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (a *App) Serve(ctx context.Context) error {
	shutdownTracer := a.setupObserves(ctx)
	defer shutdownTracer()

	gin.SetMode(a.config.RunMode)
	router := binding.NewRouter(a.handler, a.data.Health)

	srv := a.server
	server := &http.Server{
		Addr:         srv.Addr(),
		Handler:      router,
		ReadTimeout:  srv.ReadTimeout,
		WriteTimeout: srv.WriteTimeout,
	}

	config.Watch(func(cfg *config.Config) {
		a.logger.Logger.SetLevel(logrus.Level(cfg.Logger.Level))
		logger.Infof(ctx, "config reloaded, log level %d", cfg.Logger.Level)
	})

	errc := make(chan error, 1)
	go func() {
		logger.Infof(ctx, "relaypage listening on %s, driver %s", srv.Addr(), a.data.Driver())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Infof(context.Background(), "shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(context.Background(), "server forced to shutdown: %v", err)
		return err
	}
	return nil
}

// setupObserves starts tracing and error reporting when configured and
// returns their shutdown.
func (a *App) setupObserves(ctx context.Context) func() {
	shutdown := func() {}
	obs := a.config.Observes
	if obs == nil {
		return shutdown
	}

	if s := obs.Sentry; s != nil {
		if err := observes.NewSentry(&observes.SentryOptions{
			Dsn:         s.Endpoint,
			Name:        a.config.AppName,
			Release:     s.Release,
			Environment: s.Environment,
			SampleRate:  s.SampleRate,
		}); err != nil {
			logger.Warnf(ctx, "sentry disabled: %v", err)
		} else if s.Endpoint != "" {
			shutdown = func() { observes.FlushSentry(2 * time.Second) }
		}
	}

	t := obs.Tracer
	if t == nil || t.Endpoint == "" {
		return shutdown
	}
	serviceVersion := t.ServiceVersion
	if serviceVersion == "" {
		serviceVersion = version.GetVersionInfo().Version
	}
	stopTracer, err := observes.NewTracer(ctx, &observes.TracerOption{
		URL:                t.Endpoint,
		Name:               t.ServiceName,
		Version:            serviceVersion,
		Environment:        t.Environment,
		Insecure:           t.Insecure,
		Headers:            t.Headers,
		SamplingRate:       t.SamplingRate,
		BatchTimeout:       t.BatchTimeout,
		ExportTimeout:      t.ExportTimeout,
		MaxExportBatchSize: t.MaxExportBatchSize,
	})
	if err != nil {
		logger.Warnf(ctx, "tracing disabled: %v", err)
		return shutdown
	}
	flushSentry := shutdown
	return func() {
		flushSentry()
		stopCtx, cancel := context.WithTimeout(context.Background(), t.ExportTimeout)
		defer cancel()
		if err := stopTracer(stopCtx); err != nil {
			logger.Warnf(context.Background(), "tracer shutdown: %v", err)
		}
	}
}
