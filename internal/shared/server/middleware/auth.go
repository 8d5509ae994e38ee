package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/server/respond"
)

const tenantIDKey = "tenantId"

// Tenant resolves the calling tenant and stores it in the request context.
// Identity arrives either as a Bearer token of the form <tenant>.<secret>,
// verified upstream by the API gateway, or as a bare X-Tenant-Id header for
// direct and dev traffic.
func Tenant(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			tenantID := tenantFromToken(token)
			if tenantID == "" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			c.Set(tenantIDKey, tenantID)
			c.Next()
			return
		}

		tenantID := strings.TrimSpace(c.GetHeader("X-Tenant-Id"))
		if tenantID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing tenant identity", nil)
			return
		}

		c.Set(tenantIDKey, tenantID)
		c.Next()
	}
}

func tenantFromToken(token string) string {
	if token == "" {
		return ""
	}
	tenant, _, found := strings.Cut(token, ".")
	if !found {
		return ""
	}
	return strings.TrimSpace(tenant)
}

// TenantIDFromContext fetches the tenant ID set by the Tenant middleware.
func TenantIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(tenantIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
