package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/api/middleware"
	"github.com/verdemed/go-vmp/internal/domain/sample"
	"github.com/verdemed/go-vmp/internal/workflow"
)

// SampleHandler handles laboratory sample endpoints.
type SampleHandler struct {
	repo   *sample.Repository
	exec   *workflow.Executor
	logger *zap.Logger
}

// NewSampleHandler creates a new handler.
func NewSampleHandler(repo *sample.Repository, exec *workflow.Executor, logger *zap.Logger) *SampleHandler {
	return &SampleHandler{repo: repo, exec: exec, logger: logger}
}

// Routes returns the handler routes.
func (h *SampleHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Patch("/{id}/assign", h.Assign)
	return r
}

// List handles GET /samples?q=&status=
func (h *SampleHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	samples, err := h.repo.List(ctx, middleware.GetOrgID(ctx))
	if err != nil {
		h.logger.Error("list samples failed", zap.Error(err))
		mapError(w, err)
		return
	}

	q := r.URL.Query()
	samples = workflow.Filter(samples, q.Get("q"), q.Get("status"))
	writeList(w, samples)
}

// CreateSampleRequest is the request body for registering a sample.
type CreateSampleRequest struct {
	Code      string     `json:"code"`
	Priority  string     `json:"priority"`
	TestTypes []string   `json:"testTypes"`
	DueDate   *time.Time `json:"dueDate"`
}

// Create handles POST /samples
func (h *SampleHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		jsonError(w, "code is required", http.StatusUnprocessableEntity)
		return
	}
	if req.Priority == "" {
		req.Priority = sample.PriorityNormal
	}
	if !sample.ValidPriority(req.Priority) {
		jsonError(w, "unknown priority", http.StatusUnprocessableEntity)
		return
	}

	s := &sample.Sample{
		ID:        uuid.New().String(),
		OrgID:     middleware.GetOrgID(ctx),
		Code:      req.Code,
		Priority:  req.Priority,
		TestTypes: req.TestTypes,
		DueDate:   req.DueDate,
	}
	if err := h.repo.Create(ctx, s); err != nil {
		h.logger.Error("create sample failed", zap.Error(err))
		mapError(w, err)
		return
	}

	h.logger.Info("sample registered",
		zap.String("id", s.ID),
		zap.String("code", s.Code),
		zap.String("org_id", s.OrgID),
	)
	writeJSON(w, http.StatusCreated, s)
}

// Get handles GET /samples/{id}
func (h *SampleHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.repo.Get(ctx, middleware.GetOrgID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// UpdateStatus handles PATCH /samples/{id}/status
func (h *SampleHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	change, err := h.exec.Transition(ctx, middleware.GetOrgID(ctx), id, req.Status, workflow.TransitionOpts{
		ChangedBy: middleware.GetUserID(ctx),
	})
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, change)
}

// Assign handles PATCH /samples/{id}/assign
func (h *SampleHandler) Assign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := middleware.GetOrgID(ctx)
	id := chi.URLParam(r, "id")

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.repo.Assign(ctx, orgID, id, req.AssignedTo); err != nil {
		mapError(w, err)
		return
	}
	s, err := h.repo.Get(ctx, orgID, id)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
