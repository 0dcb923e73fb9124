package server

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

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/core"
	"hrportal/internal/domain/reports"
	"hrportal/internal/domain/requests"
	"hrportal/internal/platform/config"
	"hrportal/internal/platform/db"
	"hrportal/internal/platform/metrics"
	"hrportal/internal/storage/memory"
	"hrportal/internal/storage/postgres"
	"hrportal/internal/transport/http/api"
	accounthandler "hrportal/internal/transport/http/handlers/accounts"
	authhandler "hrportal/internal/transport/http/handlers/auth"
	corehandler "hrportal/internal/transport/http/handlers/core"
	reportshandler "hrportal/internal/transport/http/handlers/reports"
	requesthandler "hrportal/internal/transport/http/handlers/requests"
	"hrportal/internal/transport/http/middleware"
)

// Store is the full repository surface the services need.
type Store interface {
	auth.StoreAPI
	core.StoreAPI
	requests.StoreAPI
}

type App struct {
	Config  config.Config
	DB      *db.Pool
	Store   Store
	Metrics *metrics.Collector
	Router  http.Handler
}

// New wires stores, services and routes. Without DATABASE_URL the app runs on
// the in-process store.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Metrics: metrics.New()}
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		app.DB = pool
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, db.Migrations()); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		app.Store = postgres.NewStore(pool)
	} else {
		app.Store = memory.New()
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, app.Store, app.Store, cfg); err != nil {
			app.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	app.Router = app.routes()
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func (a *App) routes() http.Handler {
	cfg := a.Config

	authService := auth.NewService(a.Store, cfg.JWTSecret, cfg.TokenTTL)
	authService.AllowAdminSignup = cfg.AllowAdminSignup
	coreService := core.NewService(a.Store)
	requestService := requests.NewService(a.Store)
	reportService := reports.NewService(coreService, authService, requestService)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "Not found", middleware.GetRequestID(r.Context()))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "Method not allowed", middleware.GetRequestID(r.Context()))
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if a.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := a.DB.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	authn := middleware.Authenticate(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(auth.RoleAdmin)

	if cfg.MetricsEnabled {
		router.With(authn, adminOnly).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot())
		})
	}

	router.Route("/api", func(r chi.Router) {
		authhandler.NewHandler(authService, cfg.JWTSecret).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(authn)
			requesthandler.NewHandler(requestService).RegisterRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				corehandler.NewHandler(coreService).RegisterRoutes(r)
				accounthandler.NewHandler(authService).RegisterRoutes(r)
				reportshandler.NewHandler(reportService).RegisterRoutes(r)
			})
		})
	})

	return router
}

// Run loads configuration, serves until SIGINT/SIGTERM, then drains in-flight requests.
func Run() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("dotenv load failed", "err", err)
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("shutdown failed", "err", err)
		}
	}()

	backend := "memory"
	if app.DB != nil {
		backend = "postgres"
	}
	slog.Info("hrportal listening", "addr", cfg.Addr, "env", cfg.Environment, "store", backend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
