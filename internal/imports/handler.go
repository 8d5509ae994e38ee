package imports

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/products"
	"catalog-backend/internal/shared/server/middleware"
	"catalog-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the import service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches import routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/imports/csv", h.importCSV)
	rg.POST("/imports/spec-sheet", h.importSpecSheet)
}

func (h *Handler) importCSV(c *gin.Context) {
	tenantID := middleware.TenantIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	report, err := h.Svc.ImportCSV(c.Request.Context(), tenantID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidFile):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to import file", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, report)
}

func (h *Handler) importSpecSheet(c *gin.Context) {
	tenantID := middleware.TenantIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	productID := strings.TrimSpace(c.PostForm("productId"))

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	result, err := h.Svc.ImportSpecSheet(c.Request.Context(), tenantID, productID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, products.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "product not found", nil)
		case strings.Contains(err.Error(), "unsupported mime type"):
			respond.Error(c, http.StatusBadRequest, "validation_error", "only PDF spec sheets are supported", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to extract spec sheet", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, result)
}
