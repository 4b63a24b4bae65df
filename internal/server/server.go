// Package server provides the HTTP JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/takeshy/reshape/internal/logging"
	"github.com/takeshy/reshape/internal/metrics"
	"github.com/takeshy/reshape/internal/service"
	"github.com/takeshy/reshape/internal/store"
)

// Server is the HTTP API server.
type Server struct {
	svc     *service.Service
	router  chi.Router
	version string
}

// New creates a new server.
func New(svc *service.Service, version string) *Server {
	s := &Server{svc: svc, version: version}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logging.Middleware)
	r.Use(metrics.Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/scan", s.handleScan)
		r.Get("/patterns", s.handleListPatterns)
		r.Post("/patterns/add", s.handleAddPattern)
		r.Post("/patterns/remove", s.handleRemovePattern)
		r.Post("/preview", s.handlePreview)
		r.Post("/rename", s.handleRename)
		r.Get("/metadata/*", s.handleMetadata)
	})

	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server starting", logging.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logging.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// --- API Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req service.ScanRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := s.svc.Scan(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPatterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.AllPatterns())
}

func (s *Server) handleAddPattern(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pattern     string `json:"pattern"`
		Description string `json:"description"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.svc.AddPattern(req.Pattern, req.Description); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleRemovePattern(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pattern string `json:"pattern"`
	}
	if !decode(w, r, &req) {
		return
	}
	removed, err := s.svc.RemovePattern(req.Pattern)
	if err != nil {
		writeError(w, err)
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "pattern not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req service.PreviewRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := s.svc.Preview(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var req service.RenameRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := s.svc.Rename(r.Context(), req, nil)
	if err != nil {
		logging.WithContext(r.Context()).Warn("rename interrupted", logging.Err(err))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	path, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil || path == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid file path"})
		return
	}
	if path[0] != '/' && !isVolumePath(path) {
		path = "/" + path
	}
	resp, err := s.svc.Metadata(path)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// isVolumePath reports whether p starts with a Windows drive letter.
func isVolumePath(p string) bool {
	return len(p) >= 2 && p[1] == ':'
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrPatternExists):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to encode response", logging.Err(err))
	}
}
