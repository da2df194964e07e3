package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// RequisitionHandler pedidos de los bares al central y su aprobación.
type RequisitionHandler struct {
	uc  *inventory.RequisitionUseCase
	tz  *time.Location
	log *logger.Logger
}

// NewRequisitionHandler construye el handler. tz define los límites de mes del historial.
func NewRequisitionHandler(uc *inventory.RequisitionUseCase, tz *time.Location, log *logger.Logger) *RequisitionHandler {
	return &RequisitionHandler{uc: uc, tz: tz, log: log}
}

// Create godoc
// @Summary      Pedir botellas al bar central
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RequisitionRequest  true  "líneas"
// @Success      200   {object}  dto.BatchResponse[dto.RequisitionResponse]
// @Router       /api/requisitions [post]
func (h *RequisitionHandler) Create(c *fiber.Ctx) error {
	var in dto.RequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	lines := make([]inventory.RequisitionLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.RequisitionLine{ProductID: l.ProductID, Quantity: lineQuantity(l.Quantity)})
	}
	batch, err := h.uc.Create(c.UserContext(), GetScope(c), lines, in.Note)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.BatchResponse[dto.RequisitionResponse]{
		Applied: dto.FromRequisitions(batch.Created),
		Errors:  toLineErrors(batch.Errors),
	})
}

// History godoc
// @Summary      Requisiciones del bar actual
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  false  "mes (1-12)"
// @Param        year   query  int  false  "año"
// @Success      200  {array}  dto.RequisitionResponse
// @Router       /api/requisitions [get]
func (h *RequisitionHandler) History(c *fiber.Ctx) error {
	list, err := h.uc.History(c.UserContext(), GetScope(c), c.QueryInt("month", 0), c.QueryInt("year", 0), h.tz)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromRequisitions(list))
}

// Pending godoc
// @Summary      Requisiciones pendientes del restaurante
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RequisitionResponse
// @Router       /api/requisitions/pending [get]
func (h *RequisitionHandler) Pending(c *fiber.Ctx) error {
	list, err := h.uc.ListPending(c.UserContext(), GetScope(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromRequisitions(list))
}

// Decide godoc
// @Summary      Aprobar o negar requisiciones
// @Description  Cada ítem se decide en su propia transacción. Sin stock en el central la requisición
// @Description  queda STOCK_FAILURE y se informa como aplicada. Ítems inválidos se informan en errors.
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DecisionsRequest  true  "decisiones"
// @Success      200   {object}  dto.BatchResponse[dto.RequisitionResponse]
// @Router       /api/requisitions/decisions [post]
func (h *RequisitionHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecisionsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	items := make([]inventory.DecisionItem, 0, len(in.Items))
	for _, it := range in.Items {
		// Una decisión desconocida la rechaza el caso de uso como error de su ítem.
		d := inventory.Decision(strings.ToUpper(strings.TrimSpace(it.Decision)))
		items = append(items, inventory.DecisionItem{RequisitionID: it.RequisitionID, Decision: d, Reason: it.Reason})
	}
	batch, err := h.uc.DecideBatch(c.UserContext(), GetScope(c), items)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.BatchResponse[dto.RequisitionResponse]{
		Applied: dto.FromRequisitions(batch.Decided),
		Errors:  toLineErrors(batch.Errors),
	})
}
