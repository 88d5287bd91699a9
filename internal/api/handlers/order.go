package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/api/middleware"
	"github.com/verdemed/go-vmp/internal/domain/order"
	"github.com/verdemed/go-vmp/internal/workflow"
)

// OrderHandler handles order endpoints. Orders are created by the commerce
// frontend; this service only tracks and moves them through fulfillment.
type OrderHandler struct {
	repo   *order.Repository
	exec   *workflow.Executor
	logger *zap.Logger
}

// NewOrderHandler creates a new handler.
func NewOrderHandler(repo *order.Repository, exec *workflow.Executor, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{repo: repo, exec: exec, logger: logger}
}

// Routes returns the handler routes.
func (h *OrderHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
	return r
}

// List handles GET /orders?q=&status=
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orders, err := h.repo.List(ctx, middleware.GetOrgID(ctx))
	if err != nil {
		h.logger.Error("list orders failed", zap.Error(err))
		mapError(w, err)
		return
	}

	q := r.URL.Query()
	orders = workflow.Filter(orders, q.Get("q"), q.Get("status"))
	writeList(w, orders)
}

// OrderDetail is an order with its decoded line items.
type OrderDetail struct {
	*order.Order
	ParsedItems []order.Item `json:"parsedItems"`
}

// Get handles GET /orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	o, err := h.repo.Get(ctx, middleware.GetOrgID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		mapError(w, err)
		return
	}

	items, err := o.ParsedItems()
	if err != nil {
		h.logger.Error("decode order items failed", zap.String("id", o.ID), zap.Error(err))
		jsonError(w, "order items are malformed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, OrderDetail{Order: o, ParsedItems: items})
}

// UpdateStatus handles PATCH /orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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
