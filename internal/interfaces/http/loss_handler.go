package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// LossHandler pérdidas del bar actual: registro, reversión en el día y marca de baja.
type LossHandler struct {
	uc  *inventory.LossUseCase
	tz  *time.Location
	log *logger.Logger
}

// NewLossHandler construye el handler.
func NewLossHandler(uc *inventory.LossUseCase, tz *time.Location, log *logger.Logger) *LossHandler {
	return &LossHandler{uc: uc, tz: tz, log: log}
}

// Register godoc
// @Summary      Registrar pérdida
// @Description  Debita el saldo del bar actual y guarda la foto antes/después. La observación es obligatoria.
// @Tags         losses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LossRequest  true  "producto, cantidades, motivo, observación"
// @Success      201   {object}  dto.LossResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/losses [post]
func (h *LossHandler) Register(c *fiber.Ctx) error {
	var in dto.LossRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	loss, err := h.uc.Register(c.UserContext(), GetScope(c), inventory.LossInput{
		ProductID: in.ProductID,
		Bottles:   in.Bottles,
		Doses:     in.Doses,
		Reason:    in.Reason,
		Note:      in.Note,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromLoss(loss))
}

// ListDay godoc
// @Summary      Pérdidas del día en el bar actual
// @Tags         losses
// @Security     Bearer
// @Produce      json
// @Param        day  query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200  {object}  dto.LossListResponse
// @Router       /api/losses [get]
func (h *LossHandler) ListDay(c *fiber.Ctx) error {
	day, ok := parseDay(c.Query("day"), h.tz, h.uc.Today())
	if !ok {
		return badRequest(c, "VALIDATION", "day debe tener formato YYYY-MM-DD")
	}
	res, err := h.uc.ListDay(c.UserContext(), GetScope(c), day)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.LossListResponse{
		From:  res.Day,
		To:    res.Day.AddDate(0, 0, 1),
		Items: mapList(res.Losses, dto.FromLoss),
		Total: dto.QuantitiesResponse{Bottles: res.Total.Bottles, Doses: res.Total.Doses},
	})
}

// Reverse godoc
// @Summary      Revertir pérdida del día
// @Description  Devuelve la cantidad al saldo y borra el registro. Solo el mismo día calendario.
// @Tags         losses
// @Security     Bearer
// @Param        id  path  string  true  "ID de la pérdida"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/losses/{id} [delete]
func (h *LossHandler) Reverse(c *fiber.Ctx) error {
	if err := h.uc.Reverse(c.UserContext(), GetScope(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkWrittenOff godoc
// @Summary      Marcar pérdida como dada de baja
// @Tags         losses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la pérdida"
// @Param        body  body  dto.WriteOffRequest  false "observación"
// @Success      200   {object}  dto.LossResponse
// @Router       /api/losses/{id}/write-off [post]
func (h *LossHandler) MarkWrittenOff(c *fiber.Ctx) error {
	var in dto.WriteOffRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	loss, err := h.uc.MarkWrittenOff(c.UserContext(), GetScope(c), c.Params("id"), in.Note)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromLoss(loss))
}

// UnmarkWrittenOff godoc
// @Summary      Quitar la marca de baja
// @Tags         losses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la pérdida"
// @Success      200  {object}  dto.LossResponse
// @Router       /api/losses/{id}/write-off [delete]
func (h *LossHandler) UnmarkWrittenOff(c *fiber.Ctx) error {
	loss, err := h.uc.UnmarkWrittenOff(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromLoss(loss))
}

// parseDay interpreta YYYY-MM-DD en tz; vacío devuelve def.
func parseDay(s string, tz *time.Location, def time.Time) (time.Time, bool) {
	if s == "" {
		return def, true
	}
	t, err := time.ParseInLocation(time.DateOnly, s, tz)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
