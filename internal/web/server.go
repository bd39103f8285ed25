// Package web exposes the resolution engine over HTTP: JSON endpoints for
// document resolution and in-document search, plus a health check.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkgdex/pkgdex/pkg/docs"
)

// Server serves the pkgdex HTTP API.
type Server struct {
	engine *docs.Engine
	logger *log.Logger
	http   *http.Server
}

// New creates a Server for the given engine, listening on addr.
func New(engine *docs.Engine, logger *log.Logger, addr string) *Server {
	s := &Server{engine: engine, logger: logger}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler builds the route tree. Exposed for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/docs", s.handleDocs)
		r.Get("/search", s.handleSearch)
		r.Get("/ecosystems", s.handleEcosystems)
		r.Delete("/cache", s.handleCachePurge)
	})
	return r
}

// sweepInterval is how often expired cache entries are reclaimed eagerly
// while the server runs.
const sweepInterval = 5 * time.Minute

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()
	go s.sweepLoop(ctx)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

// sweepLoop reclaims expired cache entries until ctx is cancelled.
func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.engine.CacheSweep(); removed > 0 {
				s.logger.Debug("cache sweep", "removed", removed)
			}
		}
	}
}
