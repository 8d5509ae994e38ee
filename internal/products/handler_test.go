package products_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/bootstrap"
	"catalog-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func addTenantHeader(req *http.Request) {
	req.Header.Set("X-Tenant-Id", "acme")
}

func TestProductsCreateFetchAndDelete(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	payload := map[string]any{
		"title":       "Insulated Water Bottle 750ml",
		"description": "Keeps drinks cold for 24 hours. Double-walled stainless steel.",
		"price":       29.90,
		"costPrice":   9.50,
		"sku":         "BOT-750",
		"images":      []string{"https://cdn.example.com/bottle.jpg"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addTenantHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ProductID string `json:"productId"`
		Status    string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ProductID == "" {
		t.Fatalf("expected productId, got empty")
	}
	if created.Status != "draft" {
		t.Fatalf("expected draft status, got %q", created.Status)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+created.ProductID, nil)
	addTenantHeader(reqGet)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}
	var fetched struct {
		Title string  `json:"title"`
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if fetched.Title != "Insulated Water Bottle 750ml" {
		t.Fatalf("unexpected title %q", fetched.Title)
	}

	reqDel := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+created.ProductID, nil)
	addTenantHeader(reqDel)
	respDel := httptest.NewRecorder()
	router.ServeHTTP(respDel, reqDel)

	if respDel.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", respDel.Code)
	}

	reqGone := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+created.ProductID, nil)
	addTenantHeader(reqGone)
	respGone := httptest.NewRecorder()
	router.ServeHTTP(respGone, reqGone)

	if respGone.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", respGone.Code)
	}
}

func TestProductHealthReportEndpoint(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	payload := map[string]any{
		"title":     "Mug",
		"price":     9.99,
		"costPrice": 3,
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addTenantHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var created struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	reqHealth := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+created.ProductID+"/health", nil)
	addTenantHeader(reqHealth)
	respHealth := httptest.NewRecorder()
	router.ServeHTTP(respHealth, reqHealth)

	if respHealth.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", respHealth.Code, respHealth.Body.String())
	}
	var report struct {
		GlobalScore float64 `json:"globalScore"`
		Grade       string  `json:"grade"`
		Pillars     []struct {
			Key string `json:"key"`
		} `json:"pillars"`
	}
	if err := json.NewDecoder(respHealth.Body).Decode(&report); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	if report.GlobalScore < 0 || report.GlobalScore > 100 {
		t.Fatalf("globalScore out of range: %v", report.GlobalScore)
	}
	if report.Grade == "" {
		t.Fatalf("expected a grade")
	}
	if len(report.Pillars) != 6 {
		t.Fatalf("expected 6 pillars, got %d", len(report.Pillars))
	}
}

func TestProductAuditEndpoint(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	payload := map[string]any{
		"title":     "Desk Lamp",
		"price":     49.90,
		"costPrice": 14,
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addTenantHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var created struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	auditBody, _ := json.Marshal(map[string]any{
		"supplier": map[string]any{
			"rating":              4.6,
			"averageDeliveryDays": 5,
			"hasBackupSupplier":   true,
		},
	})
	reqAudit := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+created.ProductID+"/audit", bytes.NewReader(auditBody))
	reqAudit.Header.Set("Content-Type", "application/json")
	addTenantHeader(reqAudit)
	respAudit := httptest.NewRecorder()
	router.ServeHTTP(respAudit, reqAudit)

	if respAudit.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", respAudit.Code, respAudit.Body.String())
	}
	var result struct {
		GlobalScore  float64 `json:"globalScore"`
		GlobalStatus string  `json:"globalStatus"`
	}
	if err := json.NewDecoder(respAudit.Body).Decode(&result); err != nil {
		t.Fatalf("decode audit response: %v", err)
	}
	if result.GlobalScore < 0 || result.GlobalScore > 100 {
		t.Fatalf("globalScore out of range: %v", result.GlobalScore)
	}
	if result.GlobalStatus == "" {
		t.Fatalf("expected globalStatus")
	}
}

func TestProductsRejectMissingTitle(t *testing.T) {
	app := buildTestApp(t)

	body, _ := json.Marshal(map[string]any{"price": 10})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addTenantHeader(req)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestProductsRequireTenantIdentity(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}
