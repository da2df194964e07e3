package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/access"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// principalLoader es el contrato mínimo que necesita el middleware para resolver capacidades.
// Lo implementa *usecase.CapabilityService; el uso de interfaz evita el import circular.
type principalLoader interface {
	Principal(ctx context.Context, userID string) (access.Principal, error)
}

// RequireCapability devuelve un middleware Fiber que verifica si el usuario del token tiene la
// capacidad. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUserID).
//
// Comportamiento:
//   - 401 → usuario inexistente.
//   - 403 FORBIDDEN → usuario inactivo; 403 PERMISSION_DENIED → sin la capacidad.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireCapability(capability access.Capability, loader principalLoader, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		p, err := loader.Principal(c.UserContext(), userID)
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no encontrado"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva"})
		case err != nil:
			log.Error().Err(err).Str("user_id", userID).Str("capability", string(capability)).Msg("verificación de capacidad")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "CAPABILITY_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}

		if !access.HasCapability(p, capability) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_DENIED",
				Message: "sin permiso para '" + string(capability) + "'",
			})
		}
		return c.Next()
	}
}
