// Package handlers exposes the portfolio directory over HTTP, translating
// between JSON responses and the domain models.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Server wraps the HTTP server that serves the directory routes.
type Server struct {
	httpServer   *http.Server
	logger       *zap.Logger
	httpEndpoint string
}

// NewServer constructs a Server listening on httpPort.
func NewServer(httpPort int, logger *zap.Logger) *Server {
	endpoint := fmt.Sprintf(":%d", httpPort)
	return &Server{
		httpServer: &http.Server{
			Addr:              endpoint,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger:       logger.Named("http_server"),
		httpEndpoint: endpoint,
	}
}

// NewRouter registers the directory routes on a gateway mux and wraps them
// with request id, access log and, when limiter is not nil, rate limiting.
func NewRouter(h *DirectoryHandler, logger *zap.Logger, limiter *rate.Limiter) (http.Handler, error) {
	mux := runtime.NewServeMux()
	routes := []struct {
		pattern string
		handler runtime.HandlerFunc
	}{
		{"/api/companies", h.ListCompanies},
		{"/api/companies/{id}", h.GetCompany},
		{"/api/companies/{id}/founders", h.ListFounders},
		{"/healthz", h.Healthz},
	}
	for _, route := range routes {
		if err := mux.HandlePath(http.MethodGet, route.pattern, route.handler); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", route.pattern, err)
		}
	}
	var handler http.Handler = mux
	if limiter != nil {
		handler = RateLimit(handler, limiter)
	}
	return RequestID(AccessLog(handler, logger)), nil
}

// RegisterHandlers installs the directory routes on the server.
func (s *Server) RegisterHandlers(h *DirectoryHandler, limiter *rate.Limiter) error {
	router, err := NewRouter(h, s.logger, limiter)
	if err != nil {
		return err
	}
	s.httpServer.Handler = router
	return nil
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("endpoint", s.httpEndpoint))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP serve error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Server stopped")
}
