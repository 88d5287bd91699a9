package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verdemed/go-vmp/internal/api/middleware"
	"github.com/verdemed/go-vmp/internal/domain/supplier"
	"github.com/verdemed/go-vmp/internal/workflow"
)

// maxLogoSize bounds logo uploads at 2 MiB.
const maxLogoSize = 2 << 20

// SupplierHandler handles supplier endpoints, including logo uploads.
type SupplierHandler struct {
	repo      *supplier.Repository
	uploadDir string
	logger    *zap.Logger
}

// NewSupplierHandler creates a new handler. uploadDir is where logo files
// are stored.
func NewSupplierHandler(repo *supplier.Repository, uploadDir string, logger *zap.Logger) *SupplierHandler {
	return &SupplierHandler{repo: repo, uploadDir: uploadDir, logger: logger}
}

// Routes returns the handler routes.
func (h *SupplierHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/logo", h.UploadLogo)
	return r
}

// List handles GET /suppliers?q=&status=
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	suppliers, err := h.repo.List(ctx, middleware.GetOrgID(ctx))
	if err != nil {
		h.logger.Error("list suppliers failed", zap.Error(err))
		mapError(w, err)
		return
	}

	q := r.URL.Query()
	suppliers = workflow.Filter(suppliers, q.Get("q"), q.Get("status"))
	writeList(w, suppliers)
}

// SupplierRequest is the request body for creating or updating a supplier.
type SupplierRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"isActive"`
}

// Create handles POST /suppliers. The body is either JSON or multipart
// form data with an optional logo file.
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := middleware.GetOrgID(ctx)

	s := &supplier.Supplier{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
	}

	multipart := strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
	if multipart {
		if err := r.ParseMultipartForm(maxLogoSize); err != nil {
			jsonError(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		s.Name = r.FormValue("name")
		s.Document = r.FormValue("document")
		s.Email = r.FormValue("email")
		s.Phone = r.FormValue("phone")
	} else {
		var req SupplierRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		s.Name = req.Name
		s.Document = req.Document
		s.Email = req.Email
		s.Phone = req.Phone
	}

	if multipart {
		if file, header, err := r.FormFile("logo"); err == nil {
			defer file.Close()
			rel, err := h.storeLogo(orgID, s.ID, file, header.Filename)
			if err != nil {
				h.logoError(w, err)
				return
			}
			s.LogoPath = &rel
		}
	}

	if err := h.repo.Create(ctx, s); err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// Get handles GET /suppliers/{id}
func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.repo.Get(ctx, middleware.GetOrgID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Update handles PUT /suppliers/{id}
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := middleware.GetOrgID(ctx)
	id := chi.URLParam(r, "id")

	var req SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.repo.Get(ctx, orgID, id)
	if err != nil {
		mapError(w, err)
		return
	}
	s.Name = req.Name
	s.Document = req.Document
	s.Email = req.Email
	s.Phone = req.Phone
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}

	if err := h.repo.Update(ctx, s); err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// UploadLogo handles POST /suppliers/{id}/logo as multipart form data with
// the file under the "logo" field.
func (h *SupplierHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := middleware.GetOrgID(ctx)
	id := chi.URLParam(r, "id")

	s, err := h.repo.Get(ctx, orgID, id)
	if err != nil {
		mapError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		jsonError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		jsonError(w, "logo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rel, err := h.storeLogo(orgID, s.ID, file, header.Filename)
	if err != nil {
		h.logoError(w, err)
		return
	}

	if err := h.repo.SetLogo(ctx, orgID, id, rel); err != nil {
		mapError(w, err)
		return
	}

	h.logger.Info("supplier logo stored",
		zap.String("supplier_id", id),
		zap.String("path", rel),
	)
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "logoPath": rel})
}

// errUnsupportedLogo marks a file extension outside the allowed set.
var errUnsupportedLogo = errors.New("unsupported logo format")

// storeLogo writes the uploaded file under uploadDir/orgID and returns the
// path relative to uploadDir.
func (h *SupplierHandler) storeLogo(orgID, supplierID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".svg", ".webp":
	default:
		return "", errUnsupportedLogo
	}

	dir := filepath.Join(h.uploadDir, orgID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := supplierID + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create logo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, maxLogoSize)); err != nil {
		return "", fmt.Errorf("write logo file: %w", err)
	}
	return filepath.Join(orgID, name), nil
}

func (h *SupplierHandler) logoError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUnsupportedLogo) {
		jsonError(w, "unsupported logo format", http.StatusUnprocessableEntity)
		return
	}
	h.logger.Error("store logo failed", zap.Error(err))
	jsonError(w, "failed to store logo", http.StatusInternalServerError)
}
