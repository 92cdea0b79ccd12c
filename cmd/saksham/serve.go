// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/sakshamfoundation/saksham-web/internal/config"
	"github.com/sakshamfoundation/saksham-web/internal/handler"
	"github.com/sakshamfoundation/saksham-web/internal/handler/api"
	"github.com/sakshamfoundation/saksham-web/internal/logging"
	"github.com/sakshamfoundation/saksham-web/internal/metrics"
	"github.com/sakshamfoundation/saksham-web/internal/middleware"
	"github.com/sakshamfoundation/saksham-web/internal/notify"
	"github.com/sakshamfoundation/saksham-web/internal/render"
	"github.com/sakshamfoundation/saksham-web/internal/scheduler"
	"github.com/sakshamfoundation/saksham-web/internal/service"
	"github.com/sakshamfoundation/saksham-web/internal/session"
	"github.com/sakshamfoundation/saksham-web/internal/store"
	"github.com/sakshamfoundation/saksham-web/web"
)

const (
	staticMaxAge    = 7 * 24 * 60 * 60 // one week, in seconds
	apiRateLimit    = 10               // requests per second per client
	apiRateBurst    = 20
	shutdownTimeout = 30 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

// openDatabase loads the config, opens and migrates the database and
// installs the event-log backed logger.
func openDatabase() (*config.Config, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing database: %w", err)
	}

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	// WARN and ERROR records are also written to the event log
	slog.SetDefault(logging.NewLogger(os.Stdout, cfg.SlogLevel(), db))
	return cfg, db, nil
}

func seedDatabase(ctx context.Context, db *sql.DB, file string) error {
	if file == "" {
		return store.Seed(ctx, db)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}
	return store.SeedFromYAML(ctx, db, data)
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()
	logger := slog.Default()

	if cfg.DoSeed {
		if err := seedDatabase(ctx, db, cfg.SeedFile); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	m, err := metrics.New()
	if err != nil {
		return fmt.Errorf("initializing metrics: %w", err)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	defer session.Close(sessionManager)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	// Lead notifications are optional
	var notifier service.Notifier
	if cfg.NotifyEnabled() {
		if err := notify.ValidateEndpoint(ctx, cfg.NotifyURL, nil); err != nil {
			return fmt.Errorf("SAKSHAM_NOTIFY_URL: %w", err)
		}
		dispatcher := notify.NewDispatcher(logger, notify.Config{
			URL:      cfg.NotifyURL,
			Secret:   cfg.NotifySecret,
			Workers:  cfg.NotifyWorkers,
			Observer: m.RecordNotifyDelivery,
		})
		dispatcher.Start(ctx)
		defer dispatcher.Stop()
		notifier = dispatcher
		slog.Info("lead notifications enabled", "workers", cfg.NotifyWorkers)
	}

	sched := scheduler.New(db, logger, scheduler.Config{
		RolloverSchedule:  cfg.EventRolloverSchedule,
		EventLogRetention: cfg.EventLogRetention,
	})
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	site := service.NewSiteService(db)
	siteHandler := handler.NewSiteHandler(renderer, site, service.NewFormService(db, notifier), m)
	healthHandler := handler.NewHealthHandler(db, versionInfo(), cfg.IsDevelopment())

	formLimiter := middleware.NewRateLimiter(cfg.FormRateLimit, cfg.FormRateBurst)
	routes := handler.RouteTable()
	formLimiter.OnLimit = func(path string) {
		if res, ok := routes.Resolve(path); ok {
			m.RecordFormSubmission(res.Route.Name, metrics.OutcomeLimited)
		}
	}
	apiLimiter := middleware.NewRateLimiter(apiRateLimit, apiRateBurst)

	r := newRouter(routerDeps{
		cfg:            cfg,
		metrics:        m,
		sessionManager: sessionManager,
		site:           siteHandler,
		health:         healthHandler,
		api:            api.NewHandler(site),
		seo:            handler.NewSEOHandler(site, cfg.SiteURL, cfg.IsDevelopment()),
		formLimiter:    formLimiter,
		apiLimiter:     apiLimiter,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

type routerDeps struct {
	cfg            *config.Config
	metrics        *metrics.Metrics
	sessionManager *scs.SessionManager
	site           http.Handler
	health         *handler.HealthHandler
	api            *api.Handler
	seo            *handler.SEOHandler
	formLimiter    *middleware.RateLimiter
	apiLimiter     *middleware.RateLimiter
}

// newRouter assembles the middleware stack and mounts every endpoint.
func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.Metrics(d.metrics))
	secCfg := middleware.DefaultSecurityHeadersConfig(d.cfg.IsDevelopment())
	secCfg.ExcludePaths = []string{"/metrics"}
	r.Use(middleware.SecurityHeaders(secCfg))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.Timeout(d.cfg.RequestTimeout))
	csrfCfg := middleware.DefaultCSRFConfig([]byte(d.cfg.SessionSecret), d.cfg.IsDevelopment(), d.cfg.TrustedOrigins...)
	r.Use(middleware.SkipCSRF("/health", "/health/live", "/health/ready"))
	r.Use(middleware.CSRF(csrfCfg))

	// Static files embedded in the binary
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(fmt.Sprintf("static fs: %v", err))
	}
	maxAge := staticMaxAge
	if d.cfg.IsDevelopment() {
		maxAge = 0
	}
	r.With(middleware.StaticCache(maxAge)).
		Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	if d.cfg.MetricsEnabled {
		r.With(middleware.NoStore).Handle("/metrics", d.metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Get("/health", d.health.Health)
		r.Get("/health/live", d.health.Liveness)
		r.Get("/health/ready", d.health.Readiness)
	})

	r.Get("/sitemap.xml", d.seo.Sitemap)
	r.Get("/robots.txt", d.seo.Robots)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(d.apiLimiter.APIMiddleware)
		r.Mount("/", d.api.Routes())
	})

	// Every other path belongs to the site router
	site := d.sessionManager.LoadAndSave(middleware.NoStore(d.formLimiter.FormMiddleware(d.site)))
	r.NotFound(site.ServeHTTP)
	r.MethodNotAllowed(site.ServeHTTP)
	r.Handle("/", site)
	r.Handle("/*", site)

	return r
}
