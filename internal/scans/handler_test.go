package scans_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/bootstrap"
	"catalog-backend/internal/queue"
	"catalog-backend/internal/shared/config"
)

type captureQueue struct {
	messages []queue.Message
}

func (q *captureQueue) Send(ctx context.Context, msg queue.Message) error {
	_ = ctx
	q.messages = append(q.messages, msg)
	return nil
}

func buildScanTestApp(t *testing.T) (*bootstrap.App, *captureQueue) {
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

	// Route jobs through a capture queue so completion stays under test control.
	q := &captureQueue{}
	app.ScansService.Queue = q
	return app, q
}

func addTenantHeader(req *http.Request) {
	req.Header.Set("X-Tenant-Id", "acme")
}

func createProduct(t *testing.T, app *bootstrap.App, payload map[string]any) string {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addTenantHeader(req)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return created.ProductID
}

func TestProductScanLifecycle(t *testing.T) {
	app, q := buildScanTestApp(t)
	router := app.Router

	productID := createProduct(t, app, map[string]any{
		"title":     "Insulated Water Bottle 750ml",
		"price":     29.90,
		"costPrice": 9.50,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+productID+"/scan", nil)
	addTenantHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d: %s", resp.Code, resp.Body.String())
	}
	var started struct {
		ScanID string `json:"scanId"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		t.Fatalf("decode scan response: %v", err)
	}
	if started.ScanID == "" {
		t.Fatalf("expected scanId, got empty")
	}
	if started.Status != "queued" {
		t.Fatalf("expected queued status, got %q", started.Status)
	}
	if len(q.messages) != 1 || q.messages[0].ScanID != started.ScanID {
		t.Fatalf("expected 1 queued message for scan, got %v", q.messages)
	}

	if err := app.ScansService.ProcessScan(context.Background(), started.ScanID); err != nil {
		t.Fatalf("process scan: %v", err)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/scans/"+started.ScanID, nil)
	addTenantHeader(reqGet)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}
	var fetched struct {
		Status string         `json:"status"`
		Kind   string         `json:"kind"`
		Result map[string]any `json:"result"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if fetched.Status != "completed" {
		t.Fatalf("expected completed status, got %q", fetched.Status)
	}
	if fetched.Kind != "product" {
		t.Fatalf("expected product kind, got %q", fetched.Kind)
	}
	if _, ok := fetched.Result["globalScore"]; !ok {
		t.Fatalf("expected globalScore in result, got %v", fetched.Result)
	}
}

func TestCatalogScanAndSummary(t *testing.T) {
	app, _ := buildScanTestApp(t)
	router := app.Router

	createProduct(t, app, map[string]any{"title": "Mug", "price": 9.99, "costPrice": 3})
	createProduct(t, app, map[string]any{"title": "Lamp", "price": 49.90, "costPrice": 14})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/scan", nil)
	addTenantHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d: %s", resp.Code, resp.Body.String())
	}
	var started struct {
		ScanID string `json:"scanId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		t.Fatalf("decode scan response: %v", err)
	}

	if err := app.ScansService.ProcessScan(context.Background(), started.ScanID); err != nil {
		t.Fatalf("process scan: %v", err)
	}

	reqSummary := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/summary", nil)
	addTenantHeader(reqSummary)
	respSummary := httptest.NewRecorder()
	router.ServeHTTP(respSummary, reqSummary)

	if respSummary.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respSummary.Code)
	}
	var summary struct {
		TotalProducts int    `json:"totalProducts"`
		AverageScore  int    `json:"averageScore"`
		Grade         string `json:"grade"`
	}
	if err := json.NewDecoder(respSummary.Body).Decode(&summary); err != nil {
		t.Fatalf("decode summary response: %v", err)
	}
	if summary.TotalProducts != 2 {
		t.Fatalf("expected 2 products, got %d", summary.TotalProducts)
	}
	if summary.Grade == "" {
		t.Fatalf("expected a grade")
	}

	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/scans", nil)
	addTenantHeader(reqList)
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)

	if respList.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respList.Code)
	}
	var list []struct {
		ScanID string `json:"scanId"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&list); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 scan, got %d", len(list))
	}
	if list[0].Status != "completed" {
		t.Fatalf("expected completed status, got %q", list[0].Status)
	}
}

func TestProductScanUnknownProductReturns404(t *testing.T) {
	app, _ := buildScanTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/nope/scan", nil)
	addTenantHeader(req)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestScanIsScopedToTenant(t *testing.T) {
	app, _ := buildScanTestApp(t)
	router := app.Router

	productID := createProduct(t, app, map[string]any{"title": "Mug", "price": 9.99})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+productID+"/scan", nil)
	addTenantHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", resp.Code)
	}
	var started struct {
		ScanID string `json:"scanId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		t.Fatalf("decode scan response: %v", err)
	}

	reqOther := httptest.NewRequest(http.MethodGet, "/api/v1/scans/"+started.ScanID, nil)
	reqOther.Header.Set("X-Tenant-Id", "rival")
	respOther := httptest.NewRecorder()
	router.ServeHTTP(respOther, reqOther)

	if respOther.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for other tenant, got %d", respOther.Code)
	}
}
