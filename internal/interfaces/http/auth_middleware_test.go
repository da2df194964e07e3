package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/barstock-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/barstock-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testTenantID   = "00000000-0000-0000-0000-000000000002"
	testLocationID = "00000000-0000-0000-0000-000000000003"
	testIssuer     = "barstock-test"
	testExpMin     = 60
)

// buildScopeApp monta AuthMiddleware + RequireScope y un handler que devuelve el alcance.
func buildScopeApp(needLocation bool) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireScope(needLocation),
		func(c *fiber.Ctx) error {
			s := apphttp.GetScope(c)
			return c.JSON(fiber.Map{
				"user_id":     s.UserID,
				"tenant_id":   s.TenantID,
				"location_id": s.LocationID,
			})
		},
	)
	return app
}

// tokenFor genera un JWT con el alcance indicado.
func tokenFor(t *testing.T, tenantID, locationID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, tenantID, locationID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	resp := doRequest(t, buildScopeApp(false), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildScopeApp(false), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildScopeApp(false), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_OtroSecret_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret", testUserID, testTenantID, testLocationID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, buildScopeApp(false), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeAlcance(t *testing.T) {
	resp := doRequest(t, buildScopeApp(true), tokenFor(t, testTenantID, testLocationID))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testTenantID, body["tenant_id"])
	assert.Equal(t, testLocationID, body["location_id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireScope
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireScope_SinRestaurante_Retorna428(t *testing.T) {
	resp := doRequest(t, buildScopeApp(false), tokenFor(t, "", ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPreconditionRequired, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "SCOPE_REQUIRED")
}

func TestRequireScope_SinBar_Retorna428(t *testing.T) {
	resp := doRequest(t, buildScopeApp(true), tokenFor(t, testTenantID, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPreconditionRequired, resp.StatusCode)
}

func TestRequireScope_SoloRestaurante_Pasa(t *testing.T) {
	resp := doRequest(t, buildScopeApp(false), tokenFor(t, testTenantID, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
