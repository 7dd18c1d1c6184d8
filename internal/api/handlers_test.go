package api

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bilgisen/fortune-news/internal/cache"
	"github.com/bilgisen/fortune-news/internal/config"
	"github.com/gofiber/fiber/v2"
)

// testApp wires the full route table with no live database; only paths
// that short-circuit before store access are exercised here.
func testApp() *fiber.App {
	cfg := &config.Config{
		CORSAllowedOrigins: []string{"*"},
		CacheTTL:           time.Minute,
	}
	app := fiber.New()
	SetupRoutes(app, cfg, nil, cache.NewMemoryCache())
	return app
}

func TestAdminListRejectsBadQueryBeforeStoreAccess(t *testing.T) {
	app := testApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/admin/news?page=0&limit=1000", nil))
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var body errorBody
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("not an error envelope: %s", data)
	}
	if body.Success || len(body.Errors) != 2 {
		t.Errorf("both violations must be listed: %+v", body)
	}
}

func TestUpdateRejectsEmptyBodyBeforeStoreAccess(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("PUT", "/api/v1/admin/news/1", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateRejectsNonNumericID(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("PUT", "/api/v1/admin/news/abc", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPublicPreflightAnsweredBeforeBusinessLogic(t *testing.T) {
	app := testApp()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodOptions, "/api/v1/public/news", nil))
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderAccessControlAllowOrigin); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestUnknownEndpointReturnsEnvelope(t *testing.T) {
	app := testApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/nothing-here", nil))
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}

	var body errorBody
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &body); err != nil || body.Success {
		t.Errorf("404 must use the error envelope: %s", data)
	}
}

func TestWelcomeAndDocs(t *testing.T) {
	app := testApp()

	for _, path := range []string{"/api/v1", "/api/v1/docs"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("test request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("%s status = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestUploadRejectsInvalidPayload(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("POST", "/api/v1/upload", strings.NewReader(`{"title":"A"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var body errorBody
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("not an error envelope: %s", data)
	}
	// isoDate and link are both required.
	if len(body.Errors) != 2 {
		t.Errorf("expected isoDate and link violations: %+v", body.Errors)
	}
}
