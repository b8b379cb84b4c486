// Package server implements the frontier HTTP API.
//
// The API accepts a dependency graph plus a target package, runs the same
// frontier analysis as the CLI, and archives the resulting reports:
//
//	POST /v1/analyze        run an analysis, return the report
//	GET  /v1/reports        list archived reports, newest first
//	GET  /v1/reports/{id}   fetch one archived report
//	GET  /healthz           liveness probe
//
// Analyses are cached by graph content hash, target, and skip list, so
// re-submitting an identical request is served from the cache without
// walking the graph again.
package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pkgscope/frontier/pkg/cache"
	"github.com/pkgscope/frontier/pkg/store"
)

// Server holds the shared state for all API handlers.
type Server struct {
	log   *log.Logger
	cache cache.Cache
	store store.Store
}

// New creates a server backed by the given cache and store.
// Pass cache.NewNullCache() to disable result caching.
func New(logger *log.Logger, c cache.Cache, s store.Store) *Server {
	return &Server{log: logger, cache: c, store: s}
}

// Router builds the chi router with all routes and middleware registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
	})

	return r
}
