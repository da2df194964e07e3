package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/application/usecase"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// AdminHandler usuarios, accesos, capacidades y aprovisionamiento de saldos.
type AdminHandler struct {
	users       *usecase.UserUseCase
	provisioner *inventory.Provisioner
	log         *logger.Logger
}

// NewAdminHandler construye el handler.
func NewAdminHandler(users *usecase.UserUseCase, provisioner *inventory.Provisioner, log *logger.Logger) *AdminHandler {
	return &AdminHandler{users: users, provisioner: provisioner, log: log}
}

// CreateUser godoc
// @Summary      Registrar usuario
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "email, password, capabilities"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "email y password son requeridos")
	}
	out, err := h.users.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetAccess godoc
// @Summary      Reemplazar bares habilitados del usuario en un restaurante
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                true  "ID del usuario"
// @Param        body  body  dto.SetAccessRequest  true  "tenant_id, location_ids"
// @Success      204
// @Router       /api/users/{id}/access [put]
func (h *AdminHandler) SetAccess(c *fiber.Ctx) error {
	var in dto.SetAccessRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.users.GrantAccess(c.UserContext(), c.Params("id"), in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetCapabilities godoc
// @Summary      Reemplazar capacidades del usuario
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                      true  "ID del usuario"
// @Param        body  body  dto.SetCapabilitiesRequest  true  "capabilities"
// @Success      204
// @Router       /api/users/{id}/capabilities [put]
func (h *AdminHandler) SetCapabilities(c *fiber.Ctx) error {
	var in dto.SetCapabilitiesRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.users.SetCapabilities(c.UserContext(), c.Params("id"), in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Provision godoc
// @Summary      Crear saldos faltantes (bar x bebida activa)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        dry_run  query  bool  false  "solo contar"
// @Success      200  {object}  dto.ProvisionResponse
// @Router       /api/admin/provision [post]
func (h *AdminHandler) Provision(c *fiber.Ctx) error {
	ctx := c.UserContext()
	missing, err := h.provisioner.Missing(ctx)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.ProvisionResponse{Missing: missing, DryRun: c.QueryBool("dry_run", false)}
	if !out.DryRun && missing > 0 {
		if out.Created, err = h.provisioner.All(ctx); err != nil {
			return writeError(c, h.log, err)
		}
		h.log.Info().Int64("created", out.Created).Str("user_id", GetUserID(c)).Msg("saldos aprovisionados")
	}
	return c.JSON(out)
}
