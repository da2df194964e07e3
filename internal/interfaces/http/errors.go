package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// errorClass status y código público de un error de dominio.
type errorClass struct {
	err    error
	status int
	code   string
}

// Orden importa: el primero que matchea con errors.Is gana.
var errorClasses = []errorClass{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
	{domain.ErrReasonRequired, fiber.StatusBadRequest, "REASON_REQUIRED"},
	{domain.ErrSameLocation, fiber.StatusBadRequest, "SAME_LOCATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrPermissionDenied, fiber.StatusForbidden, "PERMISSION_DENIED"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrNoCentralLocation, fiber.StatusConflict, "NO_CENTRAL_LOCATION"},
	{domain.ErrReversalWindowClosed, fiber.StatusConflict, "REVERSAL_WINDOW_CLOSED"},
	{domain.ErrAlreadyWrittenOff, fiber.StatusConflict, "ALREADY_WRITTEN_OFF"},
	{domain.ErrNotWrittenOff, fiber.StatusConflict, "NOT_WRITTEN_OFF"},
	{domain.ErrEventFinalized, fiber.StatusConflict, "EVENT_FINALIZED"},
	{domain.ErrEventNotFinalized, fiber.StatusConflict, "EVENT_NOT_FINALIZED"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrScopeRequired, fiber.StatusPreconditionRequired, "SCOPE_REQUIRED"},
	{domain.ErrLockTimeout, fiber.StatusServiceUnavailable, "TEMPORARY_FAILURE"},
}

const (
	tempFailureMessage = "falla temporal, intente nuevamente"
	internalMessage    = "error interno"
)

// classifyError devuelve status, código y mensaje público. El mensaje es el del sentinel,
// nunca el error envuelto (puede traer detalles de infraestructura).
func classifyError(err error) (int, dto.ErrorResponse) {
	for _, ec := range errorClasses {
		if errors.Is(err, ec.err) {
			msg := ec.err.Error()
			if ec.status == fiber.StatusServiceUnavailable {
				msg = tempFailureMessage
			}
			return ec.status, dto.ErrorResponse{Code: ec.code, Message: msg}
		}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: internalMessage}
}

// writeError responde el error mapeado; 5xx se registran con la ruta.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, body := classifyError(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Int("status", status).Msg("request fallido")
	}
	return c.Status(status).JSON(body)
}

// badRequest atajo para cuerpos y parámetros inválidos.
func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// toLineErrors mapea los errores por línea de un lote.
func toLineErrors(list []inventory.LineError) []dto.LineErrorResponse {
	out := make([]dto.LineErrorResponse, 0, len(list))
	for _, le := range list {
		_, body := classifyError(le.Err)
		out = append(out, dto.LineErrorResponse{Ref: le.Ref, Code: body.Code, Message: body.Message})
	}
	return out
}
