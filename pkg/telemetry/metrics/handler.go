package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the Prometheus scrape endpoint in daemon mode.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// NewServer creates a metrics HTTP server exposing the collector's registry
// at the given path.
func NewServer(c *Collector, addr, path string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(c.Registry(), promhttp.HandlerOpts{}))

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger.With("component", "metrics"),
	}
}

// Start begins serving in a background goroutine.
func (s *Server) Start() {
	s.logger.Info("metrics listener started", "addr", s.srv.Addr)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("metrics listener failed", "error", err)
		}
	}()
}

// Shutdown stops the listener, waiting up to the context deadline for
// in-flight scrapes.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
