// Package server exposes the schema registry over HTTP.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/tablekit/internal/registry"
)

// Server serves the schema registry API.
type Server struct {
	store  *registry.Store
	port   int
	logger *slog.Logger
}

// Config holds configuration for the API server.
type Config struct {
	Store  *registry.Store
	Port   int
	Logger *slog.Logger
}

// New creates a new API server instance.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		store:  cfg.Store,
		port:   cfg.Port,
		logger: logger,
	}
}

// Handler builds the HTTP handler. Exposed separately from Serve so
// tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/schemas", s.handleListSchemas)
		r.Post("/infer", s.handleInfer)
		r.Route("/schemas/{name}", func(r chi.Router) {
			r.Get("/", s.handleGetSchema)
			r.Put("/", s.handlePutSchema)
			r.Delete("/", s.handleDeleteSchema)
			r.Get("/query", s.handleQuery)
			r.Get("/projection", s.handleProjection)
		})
	})

	return r
}

// Serve starts the API server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting schema registry server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down schema registry server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
