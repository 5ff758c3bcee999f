package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/salscrudato/deckard/internal/webapi"
)

// registerRoutes sets up the API routes on the given mux.
func registerRoutes(mux *http.ServeMux, cfg Config) {
	store := webapi.NewFileStore(cfg.ResultsDir)
	webapi.RegisterRoutes(mux, store, cfg.Engine)

	// Unmatched API paths get a JSON 404 instead of the index.
	mux.HandleFunc("/api/", handleAPINotFound)

	mux.HandleFunc("GET /{$}", handleIndex)
}

// handleIndex describes the service and its endpoints.
func handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
		"name":    "deckard",
		"version": webapi.Version,
		"endpoints": []string{
			"GET /api/health",
			"GET /api/layouts",
			"GET /api/rules",
			"GET /api/summary",
			"GET /api/analyses",
			"GET /api/analyses/{id}",
			"POST /api/recommend",
			"POST /api/visualize",
			"POST /api/analyze",
		},
	})
}

func handleAPINotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]any{"error": "not found", "code": http.StatusNotFound}) //nolint:errcheck
}
