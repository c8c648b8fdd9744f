// Package server provides the HTTP server and routing for the engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/vantez/engine/internal/database"
	"github.com/vantez/engine/internal/modules/engine"
	enginehandlers "github.com/vantez/engine/internal/modules/engine/handlers"
	"github.com/vantez/engine/internal/modules/fixedincome"
	fixedincomehandlers "github.com/vantez/engine/internal/modules/fixedincome/handlers"
	portfoliohandlers "github.com/vantez/engine/internal/modules/portfolio/handlers"
	"github.com/vantez/engine/internal/modules/simulation"
	simulationhandlers "github.com/vantez/engine/internal/modules/simulation/handlers"
	"github.com/vantez/engine/internal/scheduler"
)

// Version is reported by the health and status endpoints
const Version = "1.0.0"

// Config holds server configuration
type Config struct {
	Log     zerolog.Logger
	CacheDB *database.DB
	Port    int
	DevMode bool

	Engine         *engine.Service
	Projector      *fixedincome.Projector
	BenchmarkRates fixedincome.BenchmarkRateProvider
	Simulator      *simulation.Simulator

	Scheduler *scheduler.Scheduler
	Jobs      []scheduler.Job // exposed for manual triggering
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	port           int
	cfg            Config
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		port:   cfg.Port,
		cfg:    cfg,
		systemHandlers: NewSystemHandlers(
			cfg.Log,
			cfg.CacheDB,
			cfg.Engine,
			cfg.Scheduler,
			cfg.Jobs,
		),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleSystemStatus)
			r.Get("/jobs", s.systemHandlers.HandleListJobs)
			r.Post("/jobs/{name}", s.systemHandlers.HandleTriggerJob)
		})

		if s.cfg.Engine != nil {
			enginehandlers.NewHandler(s.cfg.Engine, s.log).RegisterRoutes(r)
		}
		if s.cfg.Projector != nil {
			fixedincomehandlers.NewHandler(s.cfg.Projector, s.cfg.BenchmarkRates, s.log).RegisterRoutes(r)
		}
		if s.cfg.Simulator != nil {
			simulationhandlers.NewHandler(s.cfg.Simulator, s.log).RegisterRoutes(r)
		}
		portfoliohandlers.NewHandler(s.log).RegisterRoutes(r)
	})
}

// Router exposes the configured router, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
