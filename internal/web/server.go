// Package web exposes the import pipeline over HTTP: file upload,
// validate-only preview, template download, and entity listing.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/salesflow/salesflow/internal/config"
	"github.com/salesflow/salesflow/internal/importer"
	"github.com/salesflow/salesflow/internal/web/middleware"
)

// Server is the HTTP server for the import service.
type Server struct {
	pipeline *importer.Pipeline
	limiter  *importer.Limiter
	cfg      *config.Config
	router   *chi.Mux
	server   *http.Server
}

// NewServer wires the pipeline and its limiter into a configured router.
func NewServer(pipeline *importer.Pipeline, limiter *importer.Limiter, cfg *config.Config) *Server {
	s := &Server{
		pipeline: pipeline,
		limiter:  limiter,
		cfg:      cfg,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/entities", s.handleListEntities)
		r.Get("/template/{entityType}", s.handleDownloadTemplate)
		r.Post("/import/{entityType}", s.handleImport)
		r.Post("/import/{entityType}/preview", s.handlePreview)
	})
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
