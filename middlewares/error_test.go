package middlewares_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"plastiwood-backend/middlewares"

	"github.com/gofiber/fiber/v2"
)

func errorApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Post("/x", handler)
	return app
}

func postJSON(t *testing.T, app *fiber.App, payload string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	var out map[string]any
	_ = json.Unmarshal(body, &out)
	return resp, out
}

func TestErrorHandler_FiberError(t *testing.T) {
	app := errorApp(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	})

	resp, body := postJSON(t, app, "{}")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body["error"] != "invoice not found" {
		t.Errorf("error = %v, want %q", body["error"], "invoice not found")
	}
}

func TestErrorHandler_UnknownErrorIs500(t *testing.T) {
	app := errorApp(func(c *fiber.Ctx) error {
		return io.ErrUnexpectedEOF
	})

	resp, body := postJSON(t, app, "{}")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	// Internal details must not leak into the response body.
	if body["error"] != "internal server error" {
		t.Errorf("error = %v, want generic message", body["error"])
	}
}

func TestBindAndValidate_ValidationFailureIs422WithFieldMap(t *testing.T) {
	type dto struct {
		Name string `json:"name" validate:"required"`
		Qty  int    `json:"qty" validate:"min=1"`
	}
	app := errorApp(func(c *fiber.Ctx) error {
		var in dto
		if err := middlewares.BindAndValidate(c, &in); err != nil {
			return err
		}
		return c.JSON(in)
	})

	resp, body := postJSON(t, app, `{"qty": 0}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	fields, ok := body["fields"].(map[string]any)
	if !ok {
		t.Fatalf("422 body has no fields map: %+v", body)
	}
	if fields["Name"] != "required" {
		t.Errorf("fields[Name] = %v, want %q", fields["Name"], "required")
	}
	if fields["Qty"] != "min" {
		t.Errorf("fields[Qty] = %v, want %q", fields["Qty"], "min")
	}
}

func TestBindAndValidate_MalformedBodyIs400(t *testing.T) {
	type dto struct {
		Name string `json:"name" validate:"required"`
	}
	app := errorApp(func(c *fiber.Ctx) error {
		var in dto
		if err := middlewares.BindAndValidate(c, &in); err != nil {
			return err
		}
		return c.JSON(in)
	})

	resp, body := postJSON(t, app, `{"name": `)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "invalid request body" {
		t.Errorf("error = %v, want %q", body["error"], "invalid request body")
	}
}

func TestBindAndValidate_ValidBodyPasses(t *testing.T) {
	type dto struct {
		Name string `json:"name" validate:"required"`
	}
	app := errorApp(func(c *fiber.Ctx) error {
		var in dto
		if err := middlewares.BindAndValidate(c, &in); err != nil {
			return err
		}
		return c.JSON(in)
	})

	resp, body := postJSON(t, app, `{"name": "PVC profile"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["name"] != "PVC profile" {
		t.Errorf("echoed name = %v, want %q", body["name"], "PVC profile")
	}
}
