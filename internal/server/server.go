// Package server provides the HTTP server and routing for the portfolio
// analyzer API.
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

	"github.com/gthiam/portfolio-analyzer/internal/config"
	"github.com/gthiam/portfolio-analyzer/internal/database"
	markethandlers "github.com/gthiam/portfolio-analyzer/internal/modules/market/handlers"
	portfoliohandlers "github.com/gthiam/portfolio-analyzer/internal/modules/portfolio/handlers"
)

// Config holds server configuration
type Config struct {
	Port              int
	Log               zerolog.Logger
	DB                *database.DB
	Cfg               *config.Config
	PortfolioHandlers *portfoliohandlers.Handler
	MarketHandlers    *markethandlers.Handler
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
	}

	// Middleware
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// Routes
	systemHandlers := NewSystemHandlers(cfg.Log, cfg.DB)
	s.router.Route("/api", func(r chi.Router) {
		cfg.PortfolioHandlers.RegisterRoutes(r)
		cfg.MarketHandlers.RegisterRoutes(r)
		systemHandlers.RegisterRoutes(r)
	})

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	return s
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router exposes the chi router, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}
