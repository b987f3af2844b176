// Package api wires the journal HTTP surface.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pebblelab/pebble-journal/internal/api/recovery"
	respond "github.com/pebblelab/pebble-journal/internal/api/respond"
)

// NewRouter builds the HTTP router for the journal service.
func NewRouter(h *JournalHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(recovery.Middleware)

	// Entries. Fixed paths are registered before the {entryId} routes.
	r.HandleFunc("/api/entries", h.CreateEntry).Methods("POST")
	r.HandleFunc("/api/entries", h.ListEntries).Methods("GET")
	r.HandleFunc("/api/entries/text", h.CreateTextEntry).Methods("POST")
	r.HandleFunc("/api/entries/last", h.GetLastEntry).Methods("GET")
	r.HandleFunc("/api/entries/index/{index}", h.GetEntryByIndex).Methods("GET")
	r.HandleFunc("/api/entries/{entryId}", h.GetEntry).Methods("GET")
	r.HandleFunc("/api/entries/{entryId}/resources", h.SaveEntryResources).Methods("POST")

	// Interactions
	r.HandleFunc("/api/interactions", h.ListInteractions).Methods("GET")
	r.HandleFunc("/api/interactions/last", h.GetLastInteraction).Methods("GET")
	r.HandleFunc("/api/interactions/index/{index}", h.GetInteractionByIndex).Methods("GET")
	r.HandleFunc("/api/interactions/{entryId}", h.GetInteraction).Methods("GET")

	// Operational endpoints
	r.HandleFunc("/health", handleHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
