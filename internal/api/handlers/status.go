package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verdemed/go-vmp/internal/workflow"
)

// StatusHandler exposes the status registry so clients render labels and
// badges without hardcoding the vocabulary.
type StatusHandler struct{}

// NewStatusHandler creates a new handler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// Routes returns the handler routes.
func (h *StatusHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{kind}", h.Get)
	return r
}

// statusEntry is one status in declaration order with its presentation.
type statusEntry struct {
	Status string         `json:"status"`
	Label  string         `json:"label"`
	Badge  workflow.Badge `json:"badge"`
}

// Get handles GET /statuses/{kind}
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind := workflow.Kind(chi.URLParam(r, "kind"))

	statuses := workflow.Statuses(kind)
	if len(statuses) == 0 {
		jsonError(w, "unknown kind", http.StatusNotFound)
		return
	}

	entries := make([]statusEntry, 0, len(statuses))
	for _, s := range statuses {
		p := workflow.Lookup(kind, s)
		entries = append(entries, statusEntry{Status: s, Label: p.Label, Badge: p.Badge})
	}
	writeJSON(w, http.StatusOK, entries)
}
