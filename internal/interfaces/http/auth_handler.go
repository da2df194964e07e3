package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/barstock-api/internal/application/auth"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// AuthHandler maneja login y selección de alcance.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "email y password son requeridos")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Scopes godoc
// @Summary      Bares elegibles por el usuario
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ScopeOption
// @Router       /api/auth/scopes [get]
func (h *AuthHandler) Scopes(c *fiber.Ctx) error {
	out, err := h.uc.ListScopes(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SelectScope godoc
// @Summary      Elegir restaurante y bar
// @Description  Reemite el token con el alcance elegido.
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectScopeRequest  true  "tenant_id, location_id"
// @Success      200   {object}  dto.ScopeResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/scope [post]
func (h *AuthHandler) SelectScope(c *fiber.Ctx) error {
	var in dto.SelectScopeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.TenantID == "" || in.LocationID == "" {
		return badRequest(c, "VALIDATION", "tenant_id y location_id son requeridos")
	}
	out, err := h.uc.SelectScope(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
