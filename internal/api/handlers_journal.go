package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	respond "github.com/pebblelab/pebble-journal/internal/api/respond"
	"github.com/pebblelab/pebble-journal/internal/journal"
	"github.com/pebblelab/pebble-journal/internal/model"
)

// ResourceSaver persists an entry's remote resources to a directory.
type ResourceSaver interface {
	SaveResources(ctx context.Context, e *model.Entry, dir string) ([]string, error)
}

// JournalHandler exposes the journal over HTTP. The journal itself is
// single-writer, so the handler serializes all access with a mutex.
type JournalHandler struct {
	mu          sync.Mutex
	journal     *journal.Journal
	saver       ResourceSaver
	resourceDir string
}

func NewJournalHandler(j *journal.Journal, saver ResourceSaver, resourceDir string) *JournalHandler {
	return &JournalHandler{journal: j, saver: saver, resourceDir: resourceDir}
}

// CreateEntry POST /api/entries
func (h *JournalHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Entry    map[string]any `json:"entry"`
		Response string         `json:"response,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Entry == nil {
		respond.WriteBadRequest(w, "entry is required")
		return
	}

	h.mu.Lock()
	e := h.journal.AddEntry(req.Entry, req.Response)
	h.mu.Unlock()

	if e == nil {
		respond.WriteUnprocessable(w, "entry rejected during validation")
		return
	}
	respond.WriteJSON(w, http.StatusCreated, e)
}

// CreateTextEntry POST /api/entries/text
func (h *JournalHandler) CreateTextEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string `json:"text"`
		Response string `json:"response,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Text == "" {
		respond.WriteBadRequest(w, "text is required")
		return
	}

	h.mu.Lock()
	e := h.journal.AddText(req.Text, req.Response)
	h.mu.Unlock()

	if e == nil {
		respond.WriteUnprocessable(w, "entry rejected during validation")
		return
	}
	respond.WriteJSON(w, http.StatusCreated, e)
}

// ListEntries GET /api/entries
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	out := h.journal.Entries()
	h.mu.Unlock()

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": out, "count": len(out)})
}

// GetLastEntry GET /api/entries/last
func (h *JournalHandler) GetLastEntry(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	e := h.journal.LastEntry()
	h.mu.Unlock()

	if e == nil {
		respond.WriteNotFound(w, "journal is empty")
		return
	}
	respond.WriteJSON(w, http.StatusOK, e)
}

// GetEntry GET /api/entries/{entryId}
func (h *JournalHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["entryId"]

	h.mu.Lock()
	e := h.journal.EntryByID(id)
	h.mu.Unlock()

	if e == nil {
		respond.WriteNotFound(w, "entry not found")
		return
	}
	respond.WriteJSON(w, http.StatusOK, e)
}

// GetEntryByIndex GET /api/entries/index/{index}
func (h *JournalHandler) GetEntryByIndex(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		respond.WriteBadRequest(w, "index must be an integer")
		return
	}

	h.mu.Lock()
	e := h.journal.EntryAt(idx)
	h.mu.Unlock()

	if e == nil {
		respond.WriteNotFound(w, "index out of range")
		return
	}
	respond.WriteJSON(w, http.StatusOK, e)
}

// ListInteractions GET /api/interactions
func (h *JournalHandler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	out := h.journal.Interactions()
	h.mu.Unlock()

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"interactions": out, "count": len(out)})
}

// GetLastInteraction GET /api/interactions/last
func (h *JournalHandler) GetLastInteraction(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	it := h.journal.LastInteraction()
	h.mu.Unlock()

	if it == nil {
		respond.WriteNotFound(w, "no interactions recorded")
		return
	}
	respond.WriteJSON(w, http.StatusOK, it)
}

// GetInteraction GET /api/interactions/{entryId}
func (h *JournalHandler) GetInteraction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["entryId"]

	h.mu.Lock()
	it := h.journal.InteractionByID(id)
	h.mu.Unlock()

	if it == nil {
		respond.WriteNotFound(w, "interaction not found")
		return
	}
	respond.WriteJSON(w, http.StatusOK, it)
}

// GetInteractionByIndex GET /api/interactions/index/{index}
func (h *JournalHandler) GetInteractionByIndex(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		respond.WriteBadRequest(w, "index must be an integer")
		return
	}

	h.mu.Lock()
	it := h.journal.InteractionAt(idx)
	h.mu.Unlock()

	if it == nil {
		respond.WriteNotFound(w, "index out of range")
		return
	}
	respond.WriteJSON(w, http.StatusOK, it)
}

// SaveEntryResources POST /api/entries/{entryId}/resources
func (h *JournalHandler) SaveEntryResources(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["entryId"]

	h.mu.Lock()
	e := h.journal.EntryByID(id)
	h.mu.Unlock()

	if e == nil {
		respond.WriteNotFound(w, "entry not found")
		return
	}

	saved, err := h.saver.SaveResources(r.Context(), e, h.resourceDir)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	if saved == nil {
		saved = []string{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"saved": saved, "count": len(saved)})
}
