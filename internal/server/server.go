// Package server exposes the placement algorithm and page simulation over
// HTTP.
//
//	POST /api/v1/place     compute one placement from raw geometry
//	POST /api/v1/simulate  build a page from a fixture, replay steps, render
//	GET  /healthz          liveness
//	GET  /metrics          Prometheus, when a gatherer is configured
//
// Every simulate request gets its own session, so requests never share an
// Open-Tooltip Registry.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/tooltipper/pkg/cache"
)

const (
	// DefaultCacheTTL is how long rendered simulations stay cached.
	DefaultCacheTTL = time.Hour

	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes = 1 << 20

	shutdownTimeout = 5 * time.Second
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithCache caches simulate responses in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) { s.cache, s.ttl = c, ttl }
}

// WithGatherer serves g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// Server holds the HTTP API dependencies.
type Server struct {
	logger   *log.Logger
	cache    cache.Cache
	ttl      time.Duration
	gatherer prometheus.Gatherer
}

// New creates a Server. Without WithCache nothing is cached.
func New(opts ...Option) *Server {
	s := &Server{
		logger: log.Default(),
		cache:  cache.NewNullCache(),
		ttl:    DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", "addr", addr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if err != nil {
			return err
		}
		s.logger.Info("server stopped")
		return nil
	}
}
