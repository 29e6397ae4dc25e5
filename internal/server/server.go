// SPDX-License-Identifier: EPL-2.0

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ik5/pcmwav"
	"github.com/ik5/pcmwav/internal/config"
	"github.com/ik5/pcmwav/internal/metrics"
)

const (
	wavPath     = "/v1/wav"
	samplesPath = "/v1/samples"
	healthPath  = "/healthz"
	metricsPath = "/metrics"

	shutdownTimeout = 10 * time.Second
)

// Server serves the conversion endpoints.
type Server struct {
	cfg      config.HTTPConfig
	defaults pcmwav.Format
	logger   *zap.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	handler  http.Handler
}

// New wires the routes. Collectors are registered on reg, which also backs
// the /metrics endpoint.
func New(cfg *config.Config, logger *zap.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:      cfg.HTTP,
		defaults: cfg.Audio.Format(),
		logger:   logger.Named("server"),
		metrics:  metrics.New(reg),
		gatherer: reg,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)
	s.handler = mux

	return s
}

func (s *Server) setupRoutes(mux *http.ServeMux) {
	mux.HandleFunc(wavPath, s.withMetrics(wavPath, s.handleWAV))
	mux.HandleFunc(samplesPath, s.withMetrics(samplesPath, s.handleSamples))
	mux.HandleFunc(healthPath, s.withMetrics(healthPath, s.handleHealth))
	mux.Handle(metricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
}

func (s *Server) Handler() http.Handler { return s.handler }

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", zap.String("address", l.Addr().String()))
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Address, err)
	}

	return s.Serve(ctx, l)
}

// withMetrics wraps an HTTP handler with metrics collection
func (s *Server) withMetrics(route string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		handler(ww, r)

		s.metrics.RecordHTTPRequest(route, fmt.Sprintf("%d", ww.statusCode), time.Since(start).Seconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
