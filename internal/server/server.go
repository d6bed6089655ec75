// Package server implements the flowbox HTTP API.
//
// Routes:
//
//	GET  /healthz            liveness probe
//	POST /v1/layouts         document → stored layout (201, Location header)
//	GET  /v1/layouts/{id}    stored layout
//	POST /v1/render          document or layout → artifact (?format=svg|png|pdf|dot|json)
//
// Constraint overrides are passed as query parameters: width, width_mode,
// height and height_mode. Errors are JSON objects {"code", "message"} with
// the status code derived from the error code.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flowbox/pkg/pipeline"
	"github.com/matzehuels/flowbox/pkg/store"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New builds a server. A nil store falls back to an in-memory store and a
// nil logger to the default logger.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		store:  st,
		logger: logger.WithPrefix("http"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layouts", s.handleCreateLayout)
		r.Get("/layouts/{id}", s.handleGetLayout)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
