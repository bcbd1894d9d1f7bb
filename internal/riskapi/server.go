// Package riskapi exposes the risk engine's analytics over HTTP: a
// chi router for POST /v1/hvar, /v1/mcvar, /v1/greeks, a WebSocket
// progress feed per run, and the ambient /healthz and /metrics
// endpoints.
package riskapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server bundles the router and its dependencies. Construct with
// NewServer, then call ListenAndServe (or drive Handler directly from
// an httptest server).
type Server struct {
	router *chi.Mux
	hub    *RunHub
	cache  ResultCache
	http   *http.Server
}

// NewServer wires routes against hub and cache. cache may be a
// NoopResultCache when Redis is not configured. The caller is
// responsible for starting hub.Run in its own goroutine.
func NewServer(addr string, hub *RunHub, cache ResultCache) *Server {
	s := &Server{hub: hub, cache: cache}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(metricsMiddleware)

	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/hvar", s.handleHVaR)
		r.Post("/mcvar", s.handleMCVaR)
		r.Post("/greeks", s.handleGreeks)
		r.Route("/runs/{run_id}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				s.handleGetRun(w, r, chi.URLParam(r, "run_id"))
			})
			r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
				hub.HandleWS(chi.URLParam(r, "run_id"))(w, r)
			})
		})
	})

	s.router = r
	s.http = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the assembled router, primarily so tests can drive
// it with httptest without opening a socket.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving HTTP until ctx is canceled, then
// shuts the server down gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("riskapi: listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	slog.Info("riskapi: shutting down")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": "risk-assessment-engine"})
}
