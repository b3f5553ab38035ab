// Package server wires the rickdex HTTP surface: the htmx UI and the JSON API.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/me/rickdex/internal/config"
	"github.com/me/rickdex/internal/directory"
	"github.com/me/rickdex/internal/ui"
)

// Version is reported by the health and discovery endpoints.
const Version = "0.1.0"

// Server is the rickdex HTTP server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	dir       *directory.Service
	ui        *ui.UI
	version   string
}

// Option configures optional Server behaviour.
type Option func(*Server)

// WithVersion overrides the version reported by the API.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, dir *directory.Service, logger *slog.Logger, opts ...Option) (*Server, error) {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		dir:       dir,
		version:   Version,
	}
	for _, opt := range opts {
		opt(s)
	}

	u, err := ui.New(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("create ui: %w", err)
	}
	s.ui = u

	s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	// Static files (JS, CSS)
	r.Handle("/static/*", ui.StaticHandler())

	// UI routes (HTML)
	s.ui.RegisterRoutes(r)
	r.NotFound(s.ui.HandleNotFound)

	// API routes (JSON)
	r.Route("/api/v1", func(r chi.Router) {
		r.NotFound(s.handleAPINotFound)

		// Discovery
		r.Get("/", s.handleDiscovery)

		// Health
		r.Get("/health", s.handleHealth)

		// Characters
		r.Route("/characters", func(r chi.Router) {
			r.Get("/", s.handleListCharacters)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetCharacter)
				r.Get("/episodes", s.handleGetCharacterEpisodes)
			})
		})
	})
}
