package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/domain/catalog"
)

// CatalogHandler handles the module and plan catalog.
type CatalogHandler struct {
	repo   *catalog.Repository
	logger *zap.Logger
}

// NewCatalogHandler creates a new handler.
func NewCatalogHandler(repo *catalog.Repository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{repo: repo, logger: logger}
}

// Register attaches the catalog routes to the given router.
func (h *CatalogHandler) Register(r chi.Router) {
	r.Get("/modules", h.ListModules)
	r.Put("/modules/{id}/status", h.SetModuleActive)
	r.Get("/module-plans", h.ListPlans)
	r.Get("/organizations/{orgID}/modules", h.ListOrganizationModules)
}

// ListModules handles GET /modules
func (h *CatalogHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.repo.ListModules(r.Context())
	if err != nil {
		h.logger.Error("list modules failed", zap.Error(err))
		mapError(w, err)
		return
	}
	writeList(w, modules)
}

// ModuleStatusRequest toggles a module's availability.
type ModuleStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// SetModuleActive handles PUT /modules/{id}/status
func (h *CatalogHandler) SetModuleActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ModuleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetModuleActive(r.Context(), id, req.IsActive); err != nil {
		mapError(w, err)
		return
	}

	h.logger.Info("module availability changed",
		zap.String("id", id),
		zap.Bool("active", req.IsActive),
	)
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "isActive": req.IsActive})
}

// ListPlans handles GET /module-plans
func (h *CatalogHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.repo.ListPlans(r.Context())
	if err != nil {
		h.logger.Error("list plans failed", zap.Error(err))
		mapError(w, err)
		return
	}
	writeList(w, plans)
}

// ListOrganizationModules handles GET /organizations/{orgID}/modules
func (h *CatalogHandler) ListOrganizationModules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subs, err := h.repo.ListOrganizationModules(ctx, chi.URLParam(r, "orgID"))
	if err != nil {
		h.logger.Error("list organization modules failed", zap.Error(err))
		mapError(w, err)
		return
	}
	writeList(w, subs)
}
