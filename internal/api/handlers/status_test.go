package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/verdemed/go-vmp/internal/domain/prescription"
	"github.com/verdemed/go-vmp/internal/workflow"
)

func statusRouter() http.Handler {
	r := chi.NewRouter()
	r.Mount("/statuses", NewStatusHandler().Routes())
	return r
}

func TestStatusRegistryDump(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/statuses/ticket", nil)
	rec := httptest.NewRecorder()
	statusRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var entries []statusEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(entries) != len(workflow.Statuses(workflow.KindTicket)) {
		t.Fatalf("expected every ticket status, got %d entries", len(entries))
	}
	if entries[0].Status != workflow.TicketNovo || entries[0].Label != "Novo" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	for _, e := range entries {
		if e.Label == "" || e.Badge == "" {
			t.Errorf("entry %q missing presentation", e.Status)
		}
	}
}

func TestStatusUnknownKind(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/statuses/warehouse", nil)
	rec := httptest.NewRecorder()
	statusRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected error envelope")
	}
}

func TestMapError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{workflow.ErrNotFound, http.StatusNotFound},
		{workflow.ErrInvalidTransition, http.StatusConflict},
		{workflow.ErrUnknownStatus, http.StatusUnprocessableEntity},
		{prescription.ErrNotesRequired, http.StatusUnprocessableEntity},
		{prescription.ErrAlreadyReviewed, http.StatusConflict},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		mapError(rec, tc.err)
		if rec.Code != tc.code {
			t.Errorf("error %v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Errorf("error %v: invalid envelope: %v", tc.err, err)
		}
	}
}

// A nil slice serializes as an empty items array, never null.
func TestWriteListEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	var none []string
	writeList(rec, none)

	body := rec.Body.String()
	if !strings.Contains(body, `"items":[]`) || !strings.Contains(body, `"total":0`) {
		t.Errorf("unexpected empty list envelope: %s", body)
	}
}

func TestWriteListTotal(t *testing.T) {
	rec := httptest.NewRecorder()
	writeList(rec, []int{1, 2, 3})

	var body struct {
		Items []int `json:"items"`
		Total int   `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Total != 3 || len(body.Items) != 3 {
		t.Errorf("expected 3 items, got %+v", body)
	}
}

// Wrapped workflow errors keep their mapping.
func TestMapErrorWrapped(t *testing.T) {
	err := fmt.Errorf("transition ticket t-1: %w", workflow.ErrInvalidTransition)
	rec := httptest.NewRecorder()
	mapError(rec, err)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}
