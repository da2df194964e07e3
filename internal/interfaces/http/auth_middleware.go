package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/pkg/jwt"
)

// Locals keys para el usuario y el alcance (restaurante/bar) en Fiber.
const (
	LocalUserID     = "user_id"
	LocalTenantID   = "tenant_id"
	LocalLocationID = "location_id"
)

// AuthMiddleware valida el Bearer Token JWT y extrae usuario y alcance a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalTenantID, claims.TenantID)
		c.Locals(LocalLocationID, claims.LocationID)
		return c.Next()
	}
}

// RequireScope responde 428 SCOPE_REQUIRED si el token no trae restaurante (y bar, si needLocation).
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireScope(needLocation bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetTenantID(c) == "" || (needLocation && GetLocationID(c) == "") {
			return c.Status(fiber.StatusPreconditionRequired).JSON(dto.ErrorResponse{
				Code:    "SCOPE_REQUIRED",
				Message: "seleccione un restaurante y un bar",
			})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetTenantID devuelve el restaurante elegido ("" si todavía no hay alcance).
func GetTenantID(c *fiber.Ctx) string {
	return localString(c, LocalTenantID)
}

// GetLocationID devuelve el bar elegido.
func GetLocationID(c *fiber.Ctx) string {
	return localString(c, LocalLocationID)
}

// GetScope arma el alcance explícito que reciben los casos de uso.
func GetScope(c *fiber.Ctx) entity.Scope {
	return entity.Scope{UserID: GetUserID(c), TenantID: GetTenantID(c), LocationID: GetLocationID(c)}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
