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
	"github.com/verdemed/go-vmp/internal/domain/ticket"
	"github.com/verdemed/go-vmp/internal/workflow"
)

// TicketHandler handles support ticket endpoints.
type TicketHandler struct {
	repo   *ticket.Repository
	exec   *workflow.Executor
	logger *zap.Logger
}

// NewTicketHandler creates a new handler.
func NewTicketHandler(repo *ticket.Repository, exec *workflow.Executor, logger *zap.Logger) *TicketHandler {
	return &TicketHandler{repo: repo, exec: exec, logger: logger}
}

// Routes returns the handler routes.
func (h *TicketHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/comments", h.AddComment)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Patch("/{id}/priority", h.SetPriority)
	r.Patch("/{id}/assign", h.Assign)
	return r
}

// List handles GET /tickets?q=&status=
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := middleware.GetOrgID(ctx)

	tickets, err := h.repo.List(ctx, orgID)
	if err != nil {
		h.logger.Error("list tickets failed", zap.Error(err))
		mapError(w, err)
		return
	}

	q := r.URL.Query()
	tickets = workflow.Filter(tickets, q.Get("q"), q.Get("status"))
	writeList(w, tickets)
}

// CreateTicketRequest is the request body for opening a ticket.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// Create handles POST /tickets
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tracer := otel.Tracer("ticket-handler")
	ctx, span := tracer.Start(ctx, "create_ticket")
	defer span.End()

	var req CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		jsonError(w, "title is required", http.StatusUnprocessableEntity)
		return
	}
	if req.Priority == "" {
		req.Priority = ticket.PriorityMedia
	}
	if !ticket.ValidPriority(req.Priority) {
		jsonError(w, "unknown priority", http.StatusUnprocessableEntity)
		return
	}

	t := &ticket.Ticket{
		ID:          uuid.New().String(),
		OrgID:       middleware.GetOrgID(ctx),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		CreatedBy:   middleware.GetUserID(ctx),
	}
	span.SetAttributes(attribute.String("ticket_id", t.ID))

	if err := h.repo.Create(ctx, t); err != nil {
		h.logger.Error("create ticket failed", zap.Error(err))
		mapError(w, err)
		return
	}

	h.logger.Info("ticket created",
		zap.String("id", t.ID),
		zap.String("org_id", t.OrgID),
		zap.String("request_id", middleware.GetRequestID(ctx)),
	)
	writeJSON(w, http.StatusCreated, t)
}

// TicketDetail is a ticket with its comment thread.
type TicketDetail struct {
	*ticket.Ticket
	Comments []*ticket.Comment `json:"comments"`
}

// Get handles GET /tickets/{id}
func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := middleware.GetOrgID(ctx)
	id := chi.URLParam(r, "id")

	t, err := h.repo.Get(ctx, orgID, id)
	if err != nil {
		mapError(w, err)
		return
	}

	claims := middleware.GetClaims(ctx)
	includeInternal := claims != nil && claims.HasRole("admin")
	comments, err := h.repo.ListComments(ctx, t.ID, includeInternal)
	if err != nil {
		h.logger.Error("list comments failed", zap.Error(err))
		mapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TicketDetail{Ticket: t, Comments: comments})
}

// CommentRequest is the request body for adding a comment.
type CommentRequest struct {
	Content    string `json:"content"`
	IsInternal bool   `json:"isInternal"`
}

// AddComment handles POST /tickets/{id}/comments
func (h *TicketHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := middleware.GetOrgID(ctx)
	id := chi.URLParam(r, "id")

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		jsonError(w, "content is required", http.StatusUnprocessableEntity)
		return
	}

	// Internal comments are reserved for platform staff.
	claims := middleware.GetClaims(ctx)
	if req.IsInternal && (claims == nil || !claims.HasRole("admin")) {
		jsonError(w, "insufficient role", http.StatusForbidden)
		return
	}

	if _, err := h.repo.Get(ctx, orgID, id); err != nil {
		mapError(w, err)
		return
	}

	c := &ticket.Comment{
		ID:         uuid.New().String(),
		TicketID:   id,
		AuthorID:   middleware.GetUserID(ctx),
		Content:    req.Content,
		IsInternal: req.IsInternal,
	}
	if err := h.repo.AddComment(ctx, c); err != nil {
		h.logger.Error("add comment failed", zap.Error(err))
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// StatusRequest is the request body for a status transition.
type StatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /tickets/{id}/status
func (h *TicketHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := middleware.GetOrgID(ctx)
	id := chi.URLParam(r, "id")

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	change, err := h.exec.Transition(ctx, orgID, id, req.Status, workflow.TransitionOpts{
		ChangedBy: middleware.GetUserID(ctx),
	})
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, change)
}

// PriorityRequest is the request body for changing priority.
type PriorityRequest struct {
	Priority string `json:"priority"`
}

// SetPriority handles PATCH /tickets/{id}/priority
func (h *TicketHandler) SetPriority(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := middleware.GetOrgID(ctx)
	id := chi.URLParam(r, "id")

	var req PriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !ticket.ValidPriority(req.Priority) {
		jsonError(w, "unknown priority", http.StatusUnprocessableEntity)
		return
	}

	if err := h.repo.SetPriority(ctx, orgID, id, req.Priority); err != nil {
		mapError(w, err)
		return
	}
	t, err := h.repo.Get(ctx, orgID, id)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// AssignRequest is the request body for (re)assigning. A null assignee
// clears the assignment.
type AssignRequest struct {
	AssignedTo *string `json:"assignToId"`
}

// Assign handles PATCH /tickets/{id}/assign
func (h *TicketHandler) Assign(w http.ResponseWriter, r *http.Request) {
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
	t, err := h.repo.Get(ctx, orgID, id)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
