// Package webapi exposes the layout engine and stored analysis results as a
// small JSON API. Handlers are thin: decoding, dispatch, encoding. All
// scoring goes through the same engine the CLI uses.
package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/salscrudato/deckard/internal/engine"
	"github.com/salscrudato/deckard/internal/models"
	"github.com/salscrudato/deckard/internal/orchestration"
	"github.com/salscrudato/deckard/internal/signals"
	"github.com/salscrudato/deckard/internal/visualization"
)

// Version is set at build time or defaults to dev.
var Version = "0.2.0-dev"

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store  AnalysisStore
	engine *engine.Engine
}

// NewHandlers creates a new Handlers with the given store and engine.
func NewHandlers(store AnalysisStore, eng *engine.Engine) *Handlers {
	return &Handlers{store: store, engine: eng}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleLayouts returns the layout catalog in rank order.
func (h *Handlers) HandleLayouts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.Catalog())
}

// HandleRules returns the scoring rule table with its fingerprint.
func (h *Handlers) HandleRules(w http.ResponseWriter, _ *http.Request) {
	reg := h.engine.Registry()
	resp := RulesResponse{
		Fingerprint:   reg.Fingerprint(),
		EngineVersion: engine.ScoringVersion,
	}
	for _, r := range reg.Rules() {
		resp.Rules = append(resp.Rules, RuleInfo{
			ID:        r.ID,
			Layouts:   r.Layouts,
			Weight:    r.Weight,
			Rationale: r.Rationale,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleSummary returns aggregate KPI metrics across all stored analyses.
func (h *Handlers) HandleSummary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.store.Summary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleAnalyses returns a list of all stored analyses, with optional
// sort/order query params.
func (h *Handlers) HandleAnalyses(w http.ResponseWriter, r *http.Request) {
	sortField := r.URL.Query().Get("sort")
	order := r.URL.Query().Get("order")

	analyses, err := h.store.ListAnalyses(sortField, order)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analyses)
}

// HandleAnalysisDetail returns one stored analysis with per-slide results.
func (h *Handlers) HandleAnalysisDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		// Fallback: extract from URL path for compatibility.
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/analyses/"), "/")
		if len(parts) > 0 {
			id = parts[0]
		}
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "analysis id is required")
		return
	}

	detail, err := h.store.GetAnalysis(id)
	if err != nil {
		if errors.Is(err, ErrAnalysisNotFound) {
			writeError(w, http.StatusNotFound, "analysis not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// HandleRecommend scores a single slide's content and returns the extracted
// signals alongside the engine's recommendation.
func (h *Handlers) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	var content models.SlideContent
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	sig := signals.Extract(content)
	writeJSON(w, http.StatusOK, RecommendResponse{
		Signals:        sig,
		Recommendation: h.engine.RecommendSignals(sig),
	})
}

// HandleVisualize runs the visualization detector on a single slide's content.
func (h *Handlers) HandleVisualize(w http.ResponseWriter, r *http.Request) {
	var content models.SlideContent
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, visualization.Detect(content))
}

// HandleAnalyze analyzes a whole deck posted as JSON and returns the full
// outcome. Nothing is stored; callers persist results themselves.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var deck models.Deck
	if err := json.NewDecoder(r.Body).Decode(&deck); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := deck.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	runner := orchestration.NewDeckRunner(h.engine)
	outcome, err := runner.AnalyzeDeck(r.Context(), &deck)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store AnalysisStore, eng *engine.Engine) {
	h := NewHandlers(store, eng)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/layouts", h.HandleLayouts)
	mux.HandleFunc("GET /api/rules", h.HandleRules)
	mux.HandleFunc("GET /api/summary", h.HandleSummary)
	mux.HandleFunc("GET /api/analyses", h.HandleAnalyses)
	mux.HandleFunc("GET /api/analyses/{id}", h.HandleAnalysisDetail)
	mux.HandleFunc("POST /api/recommend", h.HandleRecommend)
	mux.HandleFunc("POST /api/visualize", h.HandleVisualize)
	mux.HandleFunc("POST /api/analyze", h.HandleAnalyze)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
