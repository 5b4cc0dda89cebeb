package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"histviz/internal/config"
	"histviz/internal/dataset"
	apierrors "histviz/internal/errors"
	"histviz/internal/infrastructure"
	customMiddleware "histviz/internal/middleware"
	"histviz/internal/services"
	handlers "histviz/internal/transport/http"
	"histviz/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config         *config.Config
	Paths          *config.Paths
	Router         *chi.Mux
	Server         *http.Server
	Logger         *slog.Logger
	OTelProviders  *infrastructure.OTelProviders
	ErrorHandler   *apierrors.ErrorHandler
	Source         *dataset.FileSource
	SummaryService *services.SummaryService
	HealthService  *services.HealthService
	WebFS          fs.FS // index page and static assets; nil disables the UI
}

// NewApplication wires configuration, logging, telemetry, services and the
// router. A nil cfg loads the configuration from config.yaml and HISTVIZ_*.
// When webFS is nil the web directory on disk is served if it exists.
func NewApplication(cfg *config.Config, webFS fs.FS) (*Application, error) {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if cfg.Logging.Output != "console" && !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = paths.GetLogPath(filepath.Base(cfg.Logging.FilePath))
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Info().String()))

	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	if webFS == nil && config.FileExists(paths.WebDir) {
		webFS = os.DirFS(paths.WebDir)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
		WebFS:         webFS,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices builds the row source and the services on top of it
func (a *Application) initializeServices() error {
	summaryMetrics, err := infrastructure.CreateSummaryMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create summary metrics: %w", err)
	}

	a.Source = dataset.NewFileSource(a.Paths.DataDir, a.Logger)
	a.Source.SetObserver(services.DatasetLoadObserver(summaryMetrics))

	a.SummaryService = services.NewSummaryService(
		a.Source,
		a.Config.Summary,
		a.OTelProviders.Tracer,
		summaryMetrics,
		a.Logger,
	)

	a.HealthService = services.NewHealthService(contracts.Info(), a.Paths.DataDir, a.Logger)

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Ordering: RequestID → RealIP → OTel → Logger → Recoverer → headers → CORS → rate limit → Timeout
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
		if err != nil {
			a.Logger.Error("failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
		} else {
			r.Use(otelMiddleware.Handler)
		}

		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.ErrorHandler))
		r.Use(customMiddleware.DefaultSecureHeaders().Handler)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.getCORSConfig()))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
				a.ErrorHandler,
			).Handler)
		}

		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

		a.setupSummaryRoutes(r)
		r.Mount("/api", handlers.NewHealthHandler(a.HealthService, a.Logger).Routes())
		a.setupWebRoutes(r)
	})

	// Scrapes skip the request logger and rate limiter
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupSummaryRoutes registers the dataset listing and summary endpoints
func (a *Application) setupSummaryRoutes(r chi.Router) {
	validator := customMiddleware.NewRequestValidator(a.Logger)
	dataHandler := handlers.NewDataHandler(a.SummaryService, validator, a.Logger, a.ErrorHandler)

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.NoCache)
		r.Use(customMiddleware.MaxBodySize(a.Config.Summary.MaxBodyBytes))
		r.Use(customMiddleware.AuditLog(a.Logger))
		dataHandler.RegisterRoutes(r)
	})
}

// setupWebRoutes serves the index page and its static assets
func (a *Application) setupWebRoutes(r chi.Router) {
	if a.WebFS == nil {
		a.Logger.Warn("web assets not available, UI disabled")
		return
	}

	r.Get("/", handlers.ServeIndex(a.WebFS))
	r.Handle("/static/*", handlers.StaticFiles(a.WebFS))
}

// getCORSConfig returns the CORS configuration from the security settings
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"X-Requested-With",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
			"Content-Disposition",
		},
		MaxAge: 300,
		Logger: a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully.
func (a *Application) Serve(ctx context.Context, l net.Listener) error {
	a.Logger.InfoContext(ctx, "starting HTTP server",
		slog.String("address", l.Addr().String()),
		slog.String("data_dir", a.Paths.DataDir),
		slog.String("level", a.Config.Logging.Level))

	a.performStartupHealthCheck(ctx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// Run listens on the configured address until SIGINT or SIGTERM
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}

	return a.Serve(ctx, l)
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return infrastructure.CloseLogFile()
}

// performStartupHealthCheck logs what the row source can see. Problems are
// warnings only; the data directory may be populated after startup.
func (a *Application) performStartupHealthCheck(ctx context.Context) {
	status, err := a.HealthService.DataStatus(ctx)
	if err != nil {
		a.Logger.WarnContext(ctx, "data directory check failed", slog.String("error", err.Error()))
		return
	}

	if status.Dates == 0 && status.Datasets == 0 {
		a.Logger.WarnContext(ctx, "no datasets found", slog.String("data_dir", status.Path))
		return
	}

	a.Logger.InfoContext(ctx, "data directory ready",
		slog.String("data_dir", status.Path),
		slog.Int("dates", status.Dates),
		slog.Int("datasets", status.Datasets),
		slog.String("latest_file", status.LatestFile))
}
