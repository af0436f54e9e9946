package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"

	"github.com/taskdash/taskdash/internal/api/ws"
	"github.com/taskdash/taskdash/internal/auth"
	"github.com/taskdash/taskdash/internal/config"
	"github.com/taskdash/taskdash/internal/dashboard"
	"github.com/taskdash/taskdash/internal/metrics"
	"github.com/taskdash/taskdash/internal/server/middleware"
	redisstore "github.com/taskdash/taskdash/internal/store/redis"
	"github.com/taskdash/taskdash/internal/tasks"
	"github.com/taskdash/taskdash/internal/users"
)

// Deps bundles everything the HTTP server wires together.
type Deps struct {
	Auth      *auth.Service
	Tasks     *tasks.Service
	Users     *users.Service
	Dashboard *dashboard.Service
	PubSub    *redisstore.PubSub // nil disables the live-update socket
	Registry  *prometheus.Registry
}

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	wsHub      *ws.Hub
	cfg        *config.Config
}

// New creates a Server with all routes wired.
func New(ctx context.Context, cfg *config.Config, deps Deps) *Server {
	router := chi.NewRouter()

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	collector := metrics.NewCollector(registry)

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(collector.Middleware)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	hub := ws.NewHub(deps.PubSub)

	s := &Server{
		router: router,
		wsHub:  hub,
		cfg:    cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	// Mount API routes on /api/v1 with two sub-groups:
	// 1. Unauthenticated group for the auth endpoints, limited per IP.
	// 2. Authenticated group for everything else, limited per user.
	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ctx, cfg.Server.RateRPS, cfg.Server.RateBurst))

			authConfig := huma.DefaultConfig("TaskDash Auth API", "1.0.0")
			authConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			authAPI := humachi.New(r, authConfig)
			registerAuthRoutes(authAPI, deps.Auth)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT.Secret))
			r.Use(middleware.RateLimit(ctx, cfg.Server.RateRPS, cfg.Server.RateBurst))
			r.Use(collector.DenialMiddleware)

			apiConfig := huma.DefaultConfig("TaskDash API", "1.0.0")
			apiConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			api := humachi.New(r, apiConfig)
			registerAPIRoutes(api, deps)
		})
	})

	// WebSocket routes for live dashboard refresh.
	if deps.PubSub != nil {
		router.Route("/ws", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT.Secret))
			registerWSRoutes(r, hub)
		})
	}

	// Prometheus scrape endpoint (unauthenticated).
	router.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	// Health check (unauthenticated).
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
