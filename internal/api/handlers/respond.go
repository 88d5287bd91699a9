// Package handlers provides HTTP handlers for the admin API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/verdemed/go-vmp/internal/domain/benefit"
	"github.com/verdemed/go-vmp/internal/domain/prescription"
	"github.com/verdemed/go-vmp/internal/domain/supplier"
	"github.com/verdemed/go-vmp/internal/workflow"
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{"error": message})
}

type listResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}

// writeList wraps list payloads in an items/total envelope. A nil slice
// serializes as an empty array.
func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: len(items)})
}

// mapError translates domain and workflow errors to an HTTP status response.
func mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		jsonError(w, "not found", http.StatusNotFound)
	case errors.Is(err, workflow.ErrInvalidTransition):
		jsonError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, workflow.ErrUnknownStatus):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, prescription.ErrNotesRequired),
		errors.Is(err, benefit.ErrTitleRequired),
		errors.Is(err, benefit.ErrPartnerRequired),
		errors.Is(err, benefit.ErrInvalidPeriod),
		errors.Is(err, supplier.ErrNameRequired):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, prescription.ErrAlreadyReviewed):
		jsonError(w, err.Error(), http.StatusConflict)
	default:
		jsonError(w, "internal server error", http.StatusInternalServerError)
	}
}
