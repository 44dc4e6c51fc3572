package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	maxCallbackBytes = 1 << 20
	defaultJobLimit  = 50
	shutdownTimeout  = 15 * time.Second
)

func (s *implServer) Handler() http.Handler {
	return s.router
}

func (s *implServer) registerRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(corsMiddleware)

	s.router.Get("/healthz", s.health)
	s.router.Get("/jobs", s.listJobs)
	s.router.Get("/jobs/{id}", s.getJob)
	s.router.Get("/ws", s.events)
	s.router.Post("/callback/{id}", s.callback)
}

func (s *implServer) Start(ctx context.Context) error {
	defer s.stopStreams()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Status server listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.stopStreams()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info(ctx, "Status server stopped")
	return nil
}

func (s *implServer) health(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *implServer) listJobs(w http.ResponseWriter, r *http.Request) {
	limit := defaultJobLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}
	s.respondJSON(w, http.StatusOK, s.tracker.List(limit))
}

func (s *implServer) getJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.tracker.Get(chi.URLParam(r, "id"))
	if !ok {
		s.respondJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}
	s.respondJSON(w, http.StatusOK, job)
}

// callback records a completion notification from the service.
func (s *implServer) callback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCallbackBytes))
	if err != nil {
		s.respondJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "body too large"})
		return
	}
	if len(body) == 0 {
		body = []byte("null")
	}
	if !json.Valid(body) {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "body must be JSON"})
		return
	}

	if _, ok := s.tracker.RecordCallback(id, body); !ok {
		s.respondJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}

	s.logger.Info(r.Context(), "Callback received for submission %s", id)
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "received"})
}

func (s *implServer) respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
