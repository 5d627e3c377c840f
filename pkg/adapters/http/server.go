// Package http exposes compiled models over a read-mostly REST surface.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/epigraph/internal/presentation/graph"
	"github.com/aretw0/epigraph/internal/validator"
	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/aretw0/epigraph/pkg/params"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"
)

// maxBodySize bounds POST /build payloads.
const maxBodySize = 1 << 20

// Builder compiles parameter sets into models.
type Builder interface {
	Build(ctx context.Context, p params.Parameters) (*domain.Model, error)
}

// Server serves the current model and rebuilds it on demand.
type Server struct {
	Builder Builder
	// Base is the parameter set POST /build overrides are applied to.
	Base params.Parameters
	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer

	mu      sync.RWMutex
	current *domain.Model
}

// NewServer creates a Server for base.
func NewServer(builder Builder, base params.Parameters, gatherer prometheus.Gatherer) *Server {
	return &Server{Builder: builder, Base: base, Gatherer: gatherer}
}

// NewHandler creates the HTTP handler for the server.
func NewHandler(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "ok")
	})
	r.Get("/model", s.GetModel)
	r.Get("/compartments", s.GetCompartments)
	r.Get("/transitions", s.GetTransitions)
	r.Get("/graph", s.GetGraph)
	r.Post("/build", s.PostBuild)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Model returns the current model, building it from Base on first use.
func (s *Server) Model(ctx context.Context) (*domain.Model, error) {
	s.mu.RLock()
	m := s.current
	s.mu.RUnlock()
	if m != nil {
		return m, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return s.current, nil
	}
	m, err := s.Builder.Build(ctx, s.Base)
	if err != nil {
		return nil, err
	}
	s.current = m
	return m, nil
}

// GetModel handles GET /model. ?format=yaml switches the encoding.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	m, ok := s.model(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("format") == "yaml" {
		w.Header().Set("Content-Type", "application/yaml")
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			slog.Error("Model YAML encode failed", "error", err)
		}
		enc.Close()
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// GetCompartments handles GET /compartments.
func (s *Server) GetCompartments(w http.ResponseWriter, r *http.Request) {
	if m, ok := s.model(w, r); ok {
		writeJSON(w, http.StatusOK, m.Compartments())
	}
}

// GetTransitions handles GET /transitions.
func (s *Server) GetTransitions(w http.ResponseWriter, r *http.Request) {
	if m, ok := s.model(w, r); ok {
		writeJSON(w, http.StatusOK, m.Transitions())
	}
}

// GetGraph handles GET /graph. ?highlight=Name may repeat.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	m, ok := s.model(w, r)
	if !ok {
		return
	}
	overlay := &graph.GraphOverlay{Highlighted: r.URL.Query()["highlight"]}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(m, overlay))
}

// PostBuild handles POST /build. The body is a JSON object of parameter
// overrides applied on top of Base; the resulting model becomes current.
func (s *Server) PostBuild(w http.ResponseWriter, r *http.Request) {
	var overrides map[string]any
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(&overrides); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		slog.Warn("PostBuild: Invalid request body", "error", err)
		return
	}

	p, err := params.Decode(s.Base, overrides)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		slog.Warn("PostBuild: Invalid overrides", "error", err)
		return
	}

	m, err := s.Builder.Build(r.Context(), p)
	if err != nil {
		status := http.StatusInternalServerError
		if validator.IsConfigError(err) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		slog.Warn("PostBuild: Build failed", "error", err, "status", status)
		return
	}

	s.mu.Lock()
	s.current = m
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, m)
}

func (s *Server) model(w http.ResponseWriter, r *http.Request) (*domain.Model, bool) {
	m, err := s.Model(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		slog.Error("Model build failed", "error", err)
		return nil, false
	}
	return m, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	for _, e := range domain.ValidationErrors(err) {
		resp.Details = append(resp.Details, e.Error())
	}
	writeJSON(w, status, resp)
}
