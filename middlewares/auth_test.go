package middlewares_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"plastiwood-backend/middlewares"
	"plastiwood-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func init() {
	// The secret is read once per process, so it must be set before the
	// first token is minted or parsed.
	os.Setenv("JWT_SECRET_KEY", "test-secret-do-not-use")
}

func protectedApp(extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	handlers := append([]fiber.Handler{middlewares.IsAuthenticated()}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userID":   c.Locals("userID"),
			"username": c.Locals("username"),
			"role":     c.Locals("role"),
		})
	})
	app.Get("/secure", handlers...)
	return app
}

func doReq(t *testing.T, app *fiber.App, token string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	var out map[string]any
	_ = json.Unmarshal(body, &out)
	return resp, out
}

func TestIsAuthenticated_ValidToken(t *testing.T) {
	token, err := middlewares.GenerateJWT("user-1", "asha", models.RoleStaff)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	resp, body := doReq(t, protectedApp(), token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["userID"] != "user-1" || body["username"] != "asha" || body["role"] != models.RoleStaff {
		t.Errorf("locals not populated from claims: %+v", body)
	}
}

func TestIsAuthenticated_MissingHeader(t *testing.T) {
	resp, body := doReq(t, protectedApp(), "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body["error"] == nil {
		t.Error("401 body missing error field")
	}
}

func TestIsAuthenticated_GarbageToken(t *testing.T) {
	resp, _ := doReq(t, protectedApp(), "not.a.jwt")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestIsAuthenticated_WrongSecret(t *testing.T) {
	claims := &middlewares.Claims{
		Username: "asha",
		Role:     models.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatal(err)
	}

	resp, _ := doReq(t, protectedApp(), token)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestIsAuthenticated_ExpiredToken(t *testing.T) {
	claims := &middlewares.Claims{
		Username: "asha",
		Role:     models.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-do-not-use"))
	if err != nil {
		t.Fatal(err)
	}

	resp, _ := doReq(t, protectedApp(), token)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequireRole(t *testing.T) {
	app := protectedApp(middlewares.RequireRole(models.RoleOwner))

	ownerToken, err := middlewares.GenerateJWT("owner-1", "boss", models.RoleOwner)
	if err != nil {
		t.Fatal(err)
	}
	staffToken, err := middlewares.GenerateJWT("staff-1", "asha", models.RoleStaff)
	if err != nil {
		t.Fatal(err)
	}

	resp, _ := doReq(t, app, ownerToken)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("owner status = %d, want 200", resp.StatusCode)
	}

	resp, body := doReq(t, app, staffToken)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("staff status = %d, want 403", resp.StatusCode)
	}
	if body["error"] == nil {
		t.Error("403 body missing error field")
	}
}

func TestParseToken(t *testing.T) {
	token, err := middlewares.GenerateJWT("user-9", "meera", models.RoleOwner)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := middlewares.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed on valid token: %v", err)
	}
	if claims.Subject != "user-9" || claims.Username != "meera" || claims.Role != models.RoleOwner {
		t.Errorf("claims = %+v, want subject/user/role round-tripped", claims)
	}

	if _, err := middlewares.ParseToken("garbage"); err == nil {
		t.Error("ParseToken accepted a garbage token")
	}
}
