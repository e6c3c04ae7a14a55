package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/clientadmin/internal/clientadmin/http"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/render"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/service"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/store"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/store/drivers/memory"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/store/drivers/redis"
	"github.com/aussiebroadwan/clientadmin/pkg/httpx"
	"github.com/aussiebroadwan/clientadmin/pkg/metricsx"
	"github.com/aussiebroadwan/clientadmin/pkg/registrysdk"
	"github.com/aussiebroadwan/clientadmin/pkg/slogx"
	"github.com/aussiebroadwan/clientadmin/pkg/tracex"
)

// BuildVersion should be set at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the client admin BFF with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	cache   store.ListCache
	sdk     *registrysdk.SDKClient
	metrics *metricsx.Metrics
	tracer  *tracex.Tracer

	clientService       *service.ClientService
	housekeepingService *service.HousekeepingService // nil with redis, which expires keys itself

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "clientadmin",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metricsx.New("clientadmin"),
	}

	tracer, err := tracex.Setup(ctx, "clientadmin", BuildVersion, cfg.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.tracer = tracer

	if err := app.initCache(ctx); err != nil {
		return nil, err
	}

	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = app.cache.Close()
		return nil, err
	}

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.housekeepingService != nil {
		app.housekeepingService.Start()
	}

	app.logger.Info("client admin starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"upstream", app.cfg.OAuth2BaseURL,
		"update_strategy", app.cfg.UpdateStrategy,
		"tracing", app.tracer.Enabled(),
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down client admin...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeepingService != nil {
		app.housekeepingService.Stop()
	}

	if err := app.tracer.Shutdown(ctx); err != nil {
		app.logger.Error("error flushing traces", "error", err)
	}

	if err := app.cache.Close(); err != nil {
		app.logger.Error("error closing list cache", "error", err)
		return err
	}

	app.logger.Info("client admin stopped")
	return nil
}

// initCache connects to redis when REDIS_URL is set and falls back to a
// process local cache otherwise.
func (app *Application) initCache(ctx context.Context) error {
	if app.cfg.RedisURL == "" {
		app.cache = memory.New()
		app.logger.Info("using in-memory list cache", "ttl", app.cfg.CacheTTL)
		return nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cache, err := redis.Open(dialCtx, app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.cache = cache
	app.logger.Info("using redis list cache", "ttl", app.cfg.CacheTTL)
	return nil
}

// initServices initializes the upstream client and business logic
func (app *Application) initServices() {
	app.sdk = registrysdk.NewSDKClient(app.cfg.OAuth2BaseURL)
	app.sdk.HTTPClient = &http.Client{
		Timeout:   app.cfg.UpstreamTimeout,
		Transport: app.tracer.Transport(app.metrics.Transport(nil)),
	}

	app.clientService = &service.ClientService{
		Registry: app.sdk,
		Cache:    app.cache,
		CacheTTL: app.cfg.CacheTTL,
		Strategy: app.cfg.UpdateStrategy,
	}

	if sweeper, ok := app.cache.(store.Sweeper); ok {
		app.housekeepingService = service.NewHousekeepingService(
			sweeper,
			app.logger,
			app.cfg.HousekeepingInterval,
		)
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	router := httpapi.NewRouter(
		httpapi.RouterConfig{
			BuildVersion: BuildVersion,
			Outer:        []httpx.Middleware{app.tracer.Middleware},
			Session: httpx.SessionConfig{
				MaxAge: app.cfg.SessionMaxAge,
				Secure: app.cfg.SecureCookies,
			},
			CORSOrigins: app.cfg.CORSOrigins,
			RateLimit:   app.cfg.RateLimitEnabled,
			StaticDir:   app.cfg.StaticDir,
			Metrics:     app.metrics,
		},
		app.clientService,
		app.cache,
		renderer,
		app.logger,
	)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
