// Package api wires the editor's HTTP surface: huma routes, CORS for the
// canvas frontend, request logging, and the metrics endpoint.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	v0 "github.com/agentcanvas-dev/agentcanvas/internal/canvas/api/handlers/v0"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/api/router"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/config"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/layout"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/logging"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/project"
	"github.com/agentcanvas-dev/agentcanvas/internal/version"
)

const shutdownTimeout = 10 * time.Second

// Server is the editor HTTP server.
type Server struct {
	http   *http.Server
	logger *zap.Logger
}

// NewServer assembles the full handler chain from configuration and the
// injected stores.
func NewServer(cfg *config.Config, projects project.Service, layouts layout.Store, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	humaAPI := humago.New(mux, huma.DefaultConfig("agentcanvas API", version.Version))

	info := &v0.VersionBody{
		Version:   version.Version,
		GitCommit: version.GitCommit,
		BuildDate: version.BuildDate,
	}
	router.RegisterRoutes(humaAPI, cfg, projects, layouts, info, logger)

	var handler http.Handler = mux
	metrics := NewMetrics()
	if cfg.EnableMetrics {
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
		handler = metrics.Middleware(handler)
	}
	handler = requestLogger(logger, handler)
	handler = cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(handler)

	return &Server{
		http: &http.Server{
			Addr:              cfg.ServerAddress,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("editor API listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	s.logger.Info("editor API stopped")
	return nil
}

func requestLogger(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		if reqID := r.Header.Get("X-Request-Id"); reqID != "" {
			ctx = logging.SetRequestID(ctx, reqID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
		logging.WithRequestID(ctx, logger).Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}
