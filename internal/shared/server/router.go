package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/imports"
	"catalog-backend/internal/products"
	"catalog-backend/internal/scans"
	"catalog-backend/internal/shared/config"
	"catalog-backend/internal/shared/metrics"
	"catalog-backend/internal/shared/server/middleware"
	"catalog-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up. Dependencies are built
// in bootstrap so tests can swap repos and stores before routing.
type RouterDeps struct {
	Config         config.Config
	ProductHandler *products.Handler
	ScanHandler    *scans.Handler
	ImportHandler  *imports.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	protected := api.Group("")
	protected.Use(
		middleware.Tenant(deps.Config.Env),
		middleware.RateLimit(scanRateLimit()),
	)
	if deps.ProductHandler != nil {
		deps.ProductHandler.RegisterRoutes(protected)
	}
	if deps.ScanHandler != nil {
		deps.ScanHandler.RegisterRoutes(protected)
	}
	if deps.ImportHandler != nil {
		deps.ImportHandler.RegisterRoutes(protected)
	}

	return r
}

// scanRateLimit throttles scan submissions per tenant. Reads stay unlimited.
func scanRateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"SCAN": {Rate: 1, Burst: 10},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && strings.HasSuffix(c.FullPath(), "/scan") {
				return "SCAN"
			}
			return ""
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
