package products

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/server/middleware"
	"catalog-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches product routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products", h.create)
	rg.GET("/products", h.list)
	rg.GET("/products/:id", h.get)
	rg.PUT("/products/:id", h.update)
	rg.DELETE("/products/:id", h.remove)
	rg.GET("/products/:id/health", h.healthReport)
	rg.POST("/products/:id/audit", h.audit)
}

func (h *Handler) create(c *gin.Context) {
	tenantID := middleware.TenantIDFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), tenantID, req.toProduct())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "title or name is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create product", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(p))
}

func (h *Handler) list(c *gin.Context) {
	tenantID := middleware.TenantIDFromContext(c)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	list, err := h.Svc.List(c.Request.Context(), tenantID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list products", nil)
		}
		return
	}

	resp := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, toResponse(p))
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	tenantID := middleware.TenantIDFromContext(c)

	p, err := h.Svc.Get(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondProductError(c, err, "failed to fetch product")
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(p))
}

func (h *Handler) update(c *gin.Context) {
	tenantID := middleware.TenantIDFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	p, err := h.Svc.Update(c.Request.Context(), tenantID, c.Param("id"), req.toProduct())
	if err != nil {
		respondProductError(c, err, "failed to update product")
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(p))
}

func (h *Handler) remove(c *gin.Context) {
	tenantID := middleware.TenantIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		respondProductError(c, err, "failed to delete product")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) healthReport(c *gin.Context) {
	tenantID := middleware.TenantIDFromContext(c)

	report, err := h.Svc.HealthReport(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondProductError(c, err, "failed to score product")
		return
	}

	respond.JSON(c, http.StatusOK, report)
}

func (h *Handler) audit(c *gin.Context) {
	tenantID := middleware.TenantIDFromContext(c)

	var in AuditInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	result, err := h.Svc.Audit(c.Request.Context(), tenantID, c.Param("id"), in)
	if err != nil {
		respondProductError(c, err, "failed to audit product")
		return
	}

	respond.JSON(c, http.StatusOK, result)
}

func respondProductError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "product not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
