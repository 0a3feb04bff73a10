package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"toastd/application"
	"toastd/database"
	"toastd/domain/contracts"
	"toastd/domain/toasts"
	"toastd/infrastructure/config"
	"toastd/infrastructure/metrics"
	"toastd/infrastructure/repositories"
	"toastd/interfaces/web/handlers"
	webmw "toastd/interfaces/web/middleware"
	"toastd/interfaces/web/presenters"
	templates "toastd/interfaces/web/templates"
	"toastd/logging"
	"toastd/platform/clock"
	"toastd/platform/events"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides HTTP_ADDR)")
}

// PresentationLayer groups all presentation components
type PresentationLayer struct {
	Presenter     *presenters.ToastPresenter
	ToastHandlers *handlers.ToastHandlers
	SSEManager    *handlers.SSEManager
	WSHub         *handlers.WSHub
}

// Dependencies holds all application dependencies organized by layer
type Dependencies struct {
	// Infrastructure
	DB      *database.Database
	Logger  *logging.Logger
	Metrics *metrics.ToastMetrics

	// Repositories
	HistoryRepo contracts.ToastHistoryRepository

	// Domain and application
	EventBus     *events.ToastEventBus
	Manager      *toasts.Manager
	ToastService application.ToastService

	// Presentation Layer
	Presentation *PresentationLayer
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Create app-wide context for graceful shutdown
	appCtx, appCancel := context.WithCancel(ctx)
	defer appCancel()

	// Initialize configuration
	loadEnvironment()
	cfg := config.LoadAppConfigFromEnv()
	if serveAddr != "" {
		cfg.HTTPAddr = serveAddr
	}

	// Initialize logging
	logger := initializeLogging(cfg)

	// Initialize database
	db, err := database.New(*cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return err
	}
	defer db.Close()

	defaults, err := cfg.LoadToastDefaults()
	if err != nil {
		logger.Error("Failed to load toast defaults", "error", err, "path", cfg.ToastDefaultsFile)
		return err
	}

	// Build dependencies with app context
	deps := buildDependencies(appCtx, cfg, db, defaults, logger)
	defer deps.Manager.Close()

	// Setup routes and start server
	router := setupRoutes(deps, cfg)
	return startServer(appCtx, router, cfg.HTTPAddr, logger, deps, appCancel)
}

func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		println("No .env file found, using environment variables")
	} else {
		println("Loaded configuration from .env file")
	}
}

func initializeLogging(cfg *config.AppConfig) *logging.Logger {
	logger := logging.NewLogger(cfg.Logging)
	logging.SetDefault(logger)

	logger.Info("Application starting",
		"version", version,
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
		"db_path", cfg.Database.Path,
	)

	return logger
}

func buildDependencies(appCtx context.Context, cfg *config.AppConfig, db *database.Database, defaults toasts.Defaults, logger *logging.Logger) *Dependencies {
	historyRepo := repositories.NewSqliteToastHistoryRepository(db)

	// Event bus and subscribers
	eventBus := events.NewToastEventBus()
	events.NewHistoryEventHandlers(historyRepo).RegisterHandlers(eventBus)

	var toastMetrics *metrics.ToastMetrics
	var clientObserver handlers.ClientObserver
	if cfg.MetricsEnabled {
		toastMetrics = metrics.New()
		events.NewMetricsEventHandlers(toastMetrics).RegisterHandlers(eventBus)
		clientObserver = toastMetrics
	}

	// Push transports
	sseManager := handlers.NewSSEManager(cfg.SSEKeepAlive, clientObserver)
	wsHub := handlers.NewWSHub(clientObserver)
	presenter := presenters.NewToastPresenter("/toasts")

	// Lifecycle manager renders into every connected browser
	renderer := handlers.NewBroadcastRenderer(presenter, sseManager, wsHub)
	clk := clock.Real()
	manager := toasts.NewManager(clk, renderer, events.NewLifecycleObserver(eventBus, clk))
	manager.Attach(wsHub)

	toastService := application.NewToastService(manager, defaults, historyRepo)

	if cfg.HistoryRetention > 0 {
		go pruneHistory(appCtx, historyRepo, cfg.HistoryRetention, logger)
	}

	return &Dependencies{
		DB:           db,
		Logger:       logger,
		Metrics:      toastMetrics,
		HistoryRepo:  historyRepo,
		EventBus:     eventBus,
		Manager:      manager,
		ToastService: toastService,
		Presentation: &PresentationLayer{
			Presenter:     presenter,
			ToastHandlers: handlers.NewToastHandlers(toastService, presenter, "toastd"),
			SSEManager:    sseManager,
			WSHub:         wsHub,
		},
	}
}

// pruneHistory drops lifecycle records older than retention, checking
// once per tenth of the retention window.
func pruneHistory(ctx context.Context, repo contracts.ToastHistoryRepository, retention time.Duration, logger *logging.Logger) {
	interval := retention / 10
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruned, err := repo.Prune(ctx, time.Now().Add(-retention))
			if err != nil {
				logger.Error("Failed to prune toast history", "error", err)
				continue
			}
			if pruned > 0 {
				logger.Database("Pruned toast history", "rows", pruned)
			}
		}
	}
}

func setupRoutes(deps *Dependencies, cfg *config.AppConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	setupHTTPLogging(r, deps, cfg)
	r.Use(middleware.Recoverer)
	r.Use(webmw.Tracing(webmw.WithSkipPrefixes("/events", "/ws", "/assets", "/metrics")))

	// Static assets
	mountStaticAssets(r)

	// System endpoints
	setupSystemRoutes(r, deps)

	// Toast routes
	setupToastRoutes(r, deps)

	return r
}

func setupHTTPLogging(r *chi.Mux, deps *Dependencies, cfg *config.AppConfig) {
	if cfg.HTTPLogPath == "" {
		// No HTTP logging configured, skip
		return
	}

	logFile, err := os.OpenFile(cfg.HTTPLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		deps.Logger.Error("Failed to open HTTP log file", "error", err, "path", cfg.HTTPLogPath)
		return
	}
	// Note: logFile is not closed here as it needs to stay open for the server lifetime

	httpLogger := httplog.NewLogger("toastd", httplog.Options{
		Writer: logFile,
		JSON:   true,
	})
	r.Use(httplog.RequestLogger(httpLogger))

	deps.Logger.Info("HTTP request logging enabled", "path", cfg.HTTPLogPath)
}

func mountStaticAssets(r chi.Router) {
	sub, _ := fs.Sub(templates.FS, "assets")
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))
}

func setupSystemRoutes(r *chi.Mux, deps *Dependencies) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		stats, err := deps.DB.Health(r.Context())
		if err != nil {
			handlers.WriteJSON(w, http.StatusInternalServerError, map[string]any{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}

		handlers.WriteJSON(w, http.StatusOK, map[string]any{
			"status":        "ok",
			"database":      stats,
			"active_toasts": len(deps.Manager.Active()),
			"sse_clients":   deps.Presentation.SSEManager.ClientCount(),
			"ws_clients":    deps.Presentation.WSHub.ClientCount(),
		})
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	r.Get("/events", deps.Presentation.SSEManager.HandleSSEConnection)
	r.Get("/ws", deps.Presentation.WSHub.HandleWebSocket)
}

func setupToastRoutes(r *chi.Mux, deps *Dependencies) {
	h := deps.Presentation.ToastHandlers

	// Main page
	r.Get("/", h.Home)

	r.Route("/toasts", func(r chi.Router) {
		r.Get("/", h.ListToasts)
		r.Post("/", h.SpawnToast)
		r.Get("/history", h.History)

		r.Route("/{toastID}", func(r chi.Router) {
			r.Get("/", h.GetToast)
			r.Get("/history", h.ToastHistory)
			r.Post("/dismiss", h.DismissToast)
			r.Post("/pause", h.PauseToast)
			r.Post("/resume", h.ResumeToast)
			r.Post("/signal", h.SignalToast)
		})
	})
}

func startServer(appCtx context.Context, router *chi.Mux, addr string, logger *logging.Logger, deps *Dependencies, appCancel context.CancelFunc) error {
	server := &http.Server{Addr: addr, Handler: router}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sig)

	go func() {
		select {
		case <-sig:
			logger.Info("Shutdown signal received")
		case <-appCtx.Done():
			logger.Info("Application context cancelled")
		}

		// Cancel app-wide context first to signal all services to shutdown
		appCancel()

		// Close push connections immediately
		logger.Info("Closing push connections...")
		deps.Presentation.SSEManager.Close()
		deps.Presentation.WSHub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		serverStopCtx()
	}()

	logger.Info("Server starting", "address", addr)
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", "error", err)
		appCancel()
		<-serverCtx.Done()
		return err
	}

	<-serverCtx.Done()
	logger.Info("Server stopped")
	return nil
}
