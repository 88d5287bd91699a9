package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/api/middleware"
	"github.com/verdemed/go-vmp/internal/domain/benefit"
	"github.com/verdemed/go-vmp/internal/workflow"
)

// BenefitHandler handles partner benefit endpoints.
type BenefitHandler struct {
	repo   *benefit.Repository
	logger *zap.Logger
}

// NewBenefitHandler creates a new handler.
func NewBenefitHandler(repo *benefit.Repository, logger *zap.Logger) *BenefitHandler {
	return &BenefitHandler{repo: repo, logger: logger}
}

// Routes returns the handler routes.
func (h *BenefitHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/active", h.SetActive)
	return r
}

// List handles GET /partner-benefits?q=&status=&current=true
func (h *BenefitHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	benefits, err := h.repo.List(ctx, middleware.GetOrgID(ctx))
	if err != nil {
		h.logger.Error("list benefits failed", zap.Error(err))
		mapError(w, err)
		return
	}

	q := r.URL.Query()
	benefits = workflow.Filter(benefits, q.Get("q"), q.Get("status"))
	if q.Get("current") == "true" {
		now := time.Now().UTC()
		filtered := benefits[:0]
		for _, b := range benefits {
			if b.CurrentlyValid(now) {
				filtered = append(filtered, b)
			}
		}
		benefits = filtered
	}
	writeList(w, benefits)
}

// BenefitRequest is the request body for creating a benefit.
type BenefitRequest struct {
	Partner       string     `json:"partner"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DiscountLabel string     `json:"discountLabel"`
	ValidFrom     time.Time  `json:"validFrom"`
	ValidUntil    *time.Time `json:"validUntil"`
}

// Create handles POST /partner-benefits
func (h *BenefitHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BenefitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ValidFrom.IsZero() {
		req.ValidFrom = time.Now().UTC()
	}

	b := &benefit.PartnerBenefit{
		ID:             uuid.New().String(),
		OrganizationID: middleware.GetOrgID(ctx),
		Partner:        req.Partner,
		Title:          req.Title,
		Description:    req.Description,
		DiscountLabel:  req.DiscountLabel,
		ValidFrom:      req.ValidFrom,
		ValidUntil:     req.ValidUntil,
	}
	if err := h.repo.Create(ctx, b); err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// Get handles GET /partner-benefits/{id}
func (h *BenefitHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	b, err := h.repo.Get(ctx, middleware.GetOrgID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// ActiveRequest toggles visibility.
type ActiveRequest struct {
	IsActive bool `json:"isActive"`
}

// SetActive handles PATCH /partner-benefits/{id}/active
func (h *BenefitHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := middleware.GetOrgID(ctx)
	id := chi.URLParam(r, "id")

	var req ActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetActive(ctx, orgID, id, req.IsActive); err != nil {
		mapError(w, err)
		return
	}
	b, err := h.repo.Get(ctx, orgID, id)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
