package http_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/access"
	apphttp "github.com/jhoicas/barstock-api/internal/interfaces/http"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

type stubLoader struct {
	p   access.Principal
	err error
}

func (s stubLoader) Principal(context.Context, string) (access.Principal, error) {
	return s.p, s.err
}

func buildCapabilityApp(loader stubLoader) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCapability(access.CapLosses, loader, logger.Nop()),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestRequireCapability(t *testing.T) {
	cases := []struct {
		name   string
		loader stubLoader
		status int
		code   string
	}{
		{"con capacidad", stubLoader{p: access.NewPrincipal(testUserID, false, []string{"losses"})}, http.StatusOK, ""},
		{"superusuario", stubLoader{p: access.NewPrincipal(testUserID, true, nil)}, http.StatusOK, ""},
		{"sin capacidad", stubLoader{p: access.NewPrincipal(testUserID, false, []string{"count"})}, http.StatusForbidden, "PERMISSION_DENIED"},
		{"usuario inexistente", stubLoader{err: domain.ErrUnauthorized}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"usuario inactivo", stubLoader{err: domain.ErrForbidden}, http.StatusForbidden, "FORBIDDEN"},
		{"fallo de base", stubLoader{err: errors.New("conexión rechazada")}, http.StatusServiceUnavailable, "CAPABILITY_CHECK_FAILED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, buildCapabilityApp(tc.loader), tokenFor(t, testTenantID, testLocationID))
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.code != "" {
				assert.Contains(t, bodyString(t, resp), tc.code)
			}
		})
	}
}

func TestRequireCapability_SinToken_NoConsultaPermisos(t *testing.T) {
	app := buildCapabilityApp(stubLoader{err: errors.New("no debería llamarse")})
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
