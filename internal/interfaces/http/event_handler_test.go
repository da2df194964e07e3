package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	apphttp "github.com/jhoicas/barstock-api/internal/interfaces/http"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

func TestEvents_OtroRestauranteEs403(t *testing.T) {
	mem := newMemRepos()
	uc := inventory.NewEventUseCase(mem, repository.TxRepos{})
	h := apphttp.NewEventHandler(uc, nil, nil, time.UTC, logger.Nop())
	app := fiber.New()
	auth := apphttp.AuthMiddleware(testJWTSecret)
	app.Get("/events", auth, h.ListOpen)
	app.Get("/events/consolidated", auth, h.Consolidated)

	assert.Equal(t, http.StatusForbidden, getJSON(t, app, "/events?tenant_id=otro-restaurante", nil))
	assert.Equal(t, http.StatusForbidden,
		getJSON(t, app, "/events/consolidated?from=2026-05-01&to=2026-05-31&tenant_id=otro-restaurante", nil))
}
