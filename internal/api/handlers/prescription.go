package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/api/middleware"
	"github.com/verdemed/go-vmp/internal/domain/prescription"
	"github.com/verdemed/go-vmp/internal/workflow"
)

// PrescriptionHandler handles prescription endpoints, including the
// pharmacist review queue.
type PrescriptionHandler struct {
	repo     *prescription.Repository
	reviewer *prescription.Reviewer
	logger   *zap.Logger
}

// NewPrescriptionHandler creates a new handler.
func NewPrescriptionHandler(repo *prescription.Repository, reviewer *prescription.Reviewer, logger *zap.Logger) *PrescriptionHandler {
	return &PrescriptionHandler{repo: repo, reviewer: reviewer, logger: logger}
}

// Routes returns the prescription issuing routes.
func (h *PrescriptionHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	return r
}

// PharmacistRoutes returns the review queue routes.
func (h *PrescriptionHandler) PharmacistRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/prescriptions", h.List)
	r.Patch("/prescriptions/{id}", h.Review)
	return r
}

// List handles GET /pharmacist/prescriptions?q=&status=
func (h *PrescriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := middleware.GetOrgID(ctx)

	prescriptions, err := h.repo.List(ctx, orgID)
	if err != nil {
		h.logger.Error("list prescriptions failed", zap.Error(err))
		mapError(w, err)
		return
	}

	q := r.URL.Query()
	prescriptions = workflow.Filter(prescriptions, q.Get("q"), q.Get("status"))
	writeList(w, prescriptions)
}

// CreatePrescriptionRequest is the request body for issuing a prescription.
type CreatePrescriptionRequest struct {
	PatientID    string `json:"patientId"`
	DoctorID     string `json:"doctorId"`
	Product      string `json:"product"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
	Duration     string `json:"duration"`
}

// Create handles POST /prescriptions
func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tracer := otel.Tracer("prescription-handler")
	ctx, span := tracer.Start(ctx, "create_prescription")
	defer span.End()

	var req CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PatientID == "" || req.DoctorID == "" || req.Product == "" {
		jsonError(w, "patientId, doctorId and product are required", http.StatusUnprocessableEntity)
		return
	}

	p := &prescription.Prescription{
		ID:           uuid.New().String(),
		OrgID:        middleware.GetOrgID(ctx),
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		Product:      req.Product,
		Dosage:       req.Dosage,
		Instructions: req.Instructions,
		Duration:     req.Duration,
	}
	span.SetAttributes(attribute.String("prescription_id", p.ID))

	if err := h.repo.Create(ctx, p); err != nil {
		h.logger.Error("create prescription failed", zap.Error(err))
		mapError(w, err)
		return
	}

	h.logger.Info("prescription created",
		zap.String("id", p.ID),
		zap.String("org_id", p.OrgID),
		zap.String("request_id", middleware.GetRequestID(ctx)),
	)
	writeJSON(w, http.StatusCreated, p)
}

// Get handles GET /prescriptions/{id}
func (h *PrescriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := h.repo.Get(ctx, middleware.GetOrgID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ReviewRequest is the request body for the pharmacist decision.
type ReviewRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// Review handles PATCH /pharmacist/prescriptions/{id}
func (h *PrescriptionHandler) Review(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.reviewer.Review(ctx, middleware.GetOrgID(ctx), id, middleware.GetUserID(ctx), req.Status, req.Notes)
	if err != nil {
		mapError(w, err)
		return
	}

	h.logger.Info("prescription reviewed",
		zap.String("id", id),
		zap.String("status", p.Status),
		zap.String("reviewer", middleware.GetUserID(ctx)),
	)
	writeJSON(w, http.StatusOK, p)
}
