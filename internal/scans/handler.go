package scans

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/server/middleware"
	"catalog-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the scans service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches scan routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products/:id/scan", h.startProductScan)
	rg.POST("/catalog/scan", h.startCatalogScan)
	rg.GET("/scans", h.listScans)
	rg.GET("/scans/:id", h.getScan)
	rg.GET("/catalog/summary", h.catalogSummary)
}

func (h *Handler) startProductScan(c *gin.Context) {
	tenantID := middleware.TenantIDFromContext(c)
	productID := c.Param("id")
	if productID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "product id is required", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	scan, err := h.Svc.StartProductScan(ctx, tenantID, productID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "product not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start scan", nil)
		}
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"scanId": scan.ID,
		"status": scan.Status,
	})
}

func (h *Handler) startCatalogScan(c *gin.Context) {
	tenantID := middleware.TenantIDFromContext(c)

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	scan, err := h.Svc.StartCatalogScan(ctx, tenantID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start scan", nil)
		}
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"scanId": scan.ID,
		"status": scan.Status,
	})
}

func (h *Handler) getScan(c *gin.Context) {
	tenantID := middleware.TenantIDFromContext(c)
	scanID := c.Param("id")
	if scanID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "scan id is required", nil)
		return
	}

	scan, err := h.Svc.Get(c.Request.Context(), tenantID, scanID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "scan not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch scan", nil)
		}
		return
	}

	resp := gin.H{
		"id":        scan.ID,
		"kind":      scan.Kind,
		"status":    scan.Status,
		"createdAt": scan.CreatedAt,
	}
	if scan.ProductID != "" {
		resp["productId"] = scan.ProductID
	}
	if scan.Status == StatusCompleted && scan.Result != nil {
		resp["result"] = scan.Result
	}
	if scan.Status == StatusFailed {
		if scan.ErrorCode != nil {
			resp["errorCode"] = *scan.ErrorCode
		}
		if scan.ErrorMessage != nil {
			resp["errorMessage"] = *scan.ErrorMessage
		}
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) listScans(c *gin.Context) {
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
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list scans", nil)
		return
	}

	resp := make([]gin.H, 0, len(list))
	for _, scan := range list {
		item := gin.H{
			"scanId":    scan.ID,
			"kind":      scan.Kind,
			"status":    scan.Status,
			"createdAt": scan.CreatedAt,
		}
		if scan.ProductID != "" {
			item["productId"] = scan.ProductID
		}
		if scan.Status == StatusCompleted && scan.Result != nil {
			if score, ok := scan.Result["globalScore"]; ok {
				item["globalScore"] = score
			}
			if score, ok := scan.Result["averageScore"]; ok {
				item["averageScore"] = score
			}
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) catalogSummary(c *gin.Context) {
	tenantID := middleware.TenantIDFromContext(c)

	summary, err := h.Svc.CatalogSummary(c.Request.Context(), tenantID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze catalog", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, summary)
}
