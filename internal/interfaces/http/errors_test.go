package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/domain"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: cantidad", domain.ErrInvalidInput), fiber.StatusBadRequest, "INVALID_INPUT"},
		{domain.ErrReasonRequired, fiber.StatusBadRequest, "REASON_REQUIRED"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("retirar: %w", domain.ErrInsufficientStock), fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
		{domain.ErrScopeRequired, fiber.StatusPreconditionRequired, "SCOPE_REQUIRED"},
		{domain.ErrEventFinalized, fiber.StatusConflict, "EVENT_FINALIZED"},
	}
	for _, tc := range cases {
		status, body := classifyError(tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, body.Code)
	}
}

func TestClassifyError_LockTimeoutOcultaDetalle(t *testing.T) {
	status, body := classifyError(fmt.Errorf("balances: %w: canceling statement", domain.ErrLockTimeout))

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "TEMPORARY_FAILURE", body.Code)
	assert.Equal(t, tempFailureMessage, body.Message)
}

func TestClassifyError_Desconocido(t *testing.T) {
	status, body := classifyError(errors.New("pq: relation does not exist"))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "relation")
}

func TestToLineErrors(t *testing.T) {
	out := toLineErrors([]inventory.LineError{
		{Ref: "p1", Err: domain.ErrInsufficientStock},
		{Ref: "p2", Err: domain.ErrNotFound},
	})

	if assert.Len(t, out, 2) {
		assert.Equal(t, "p1", out[0].Ref)
		assert.Equal(t, "INSUFFICIENT_STOCK", out[0].Code)
		assert.Equal(t, "NOT_FOUND", out[1].Code)
	}
}

func TestClassifyError_MensajesEnEspanol(t *testing.T) {
	_, tmp := classifyError(domain.ErrLockTimeout)
	_, other := classifyError(errors.New("x"))

	assert.Equal(t, "falla temporal, intente nuevamente", tmp.Message)
	assert.Equal(t, "error interno", other.Message)
}
