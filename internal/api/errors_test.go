package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func handleErrorResponse(t *testing.T, err error) (int, errorBody) {
	t.Helper()
	app := fiber.New()
	app.Get("/t", func(c *fiber.Ctx) error {
		return HandleError(c, err)
	})

	resp, terr := app.Test(httptest.NewRequest("GET", "/t", nil))
	if terr != nil {
		t.Fatalf("test request failed: %v", terr)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("response is not an error envelope: %v (%s)", err, data)
	}
	return resp.StatusCode, body
}

func TestHandleErrorValidation(t *testing.T) {
	err := NewValidationError(
		FieldError{Field: "page", Message: "page must be at least 1"},
		FieldError{Field: "limit", Message: "limit must be at most 100"},
	)

	status, body := handleErrorResponse(t, err)
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if body.Success || len(body.Errors) != 2 {
		t.Errorf("expected both field errors in envelope: %+v", body)
	}
}

func TestHandleErrorNotFound(t *testing.T) {
	status, body := handleErrorResponse(t, &NotFoundError{Message: "news not found"})
	if status != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if body.Message != "news not found" || len(body.Errors) != 0 {
		t.Errorf("not-found must carry a generic message without field list: %+v", body)
	}

	status, _ = handleErrorResponse(t, gorm.ErrRecordNotFound)
	if status != fiber.StatusNotFound {
		t.Errorf("gorm not-found must map to 404, got %d", status)
	}
}

func TestHandleErrorConstraintViolations(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{pgUniqueViolation, fiber.StatusBadRequest},
		{pgForeignKeyViolation, fiber.StatusBadRequest},
		{pgRestrictViolation, fiber.StatusBadRequest},
		{"57014", fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		status, body := handleErrorResponse(t, &pgconn.PgError{Code: tt.code})
		if status != tt.want {
			t.Errorf("pg code %s: status = %d, want %d", tt.code, status, tt.want)
		}
		if body.Success {
			t.Errorf("pg code %s: success must be false", tt.code)
		}
	}
}

func TestHandleErrorUnclassified(t *testing.T) {
	status, body := handleErrorResponse(t, errors.New("connection reset"))
	if status != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
	if body.Message != "connection reset" {
		t.Errorf("underlying message must surface, got %q", body.Message)
	}
}

func TestHandleErrorWrappedClassification(t *testing.T) {
	wrapped := errors.Join(errors.New("lookup failed"), gorm.ErrRecordNotFound)
	status, _ := handleErrorResponse(t, wrapped)
	if status != fiber.StatusNotFound {
		t.Errorf("wrapped not-found must still map to 404, got %d", status)
	}
}
