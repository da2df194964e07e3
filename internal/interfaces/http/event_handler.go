package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/application/usecase"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// eventReportGenerator genera el PDF del consolidado; lo implementa *pdf.EventReportGenerator.
type eventReportGenerator interface {
	GenerateEventReport(ctx context.Context, report *inventory.EventConsolidated, tenantName string) ([]byte, error)
}

// EventHandler eventos con consumo informativo (no debita saldos).
type EventHandler struct {
	uc      *inventory.EventUseCase
	tenants *usecase.TenantUseCase
	pdf     eventReportGenerator
	tz      *time.Location
	log     *logger.Logger
}

// NewEventHandler construye el handler.
func NewEventHandler(uc *inventory.EventUseCase, tenants *usecase.TenantUseCase, pdf eventReportGenerator, tz *time.Location, log *logger.Logger) *EventHandler {
	return &EventHandler{uc: uc, tenants: tenants, pdf: pdf, tz: tz, log: log}
}

// Create godoc
// @Summary      Crear evento
// @Description  Líneas repetidas se suman, negativos quedan en cero y productos/alimentos desconocidos se ignoran.
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEventRequest  true  "evento"
// @Success      201   {object}  dto.EventResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	e, err := h.uc.Create(c.UserContext(), GetScope(c), inventory.EventInput{
		Name:      in.Name,
		TenantID:  in.TenantID,
		Guests:    in.Guests,
		Hours:     in.Hours,
		EventDate: in.EventDate,
		Products:  toEventProductLines(in.Products),
		Foods:     toEventFoodLines(in.Foods),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromEvent(e))
}

// Get godoc
// @Summary      Obtener evento
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del evento"
// @Success      200  {object}  dto.EventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [get]
func (h *EventHandler) Get(c *fiber.Ctx) error {
	e, err := h.uc.Get(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromEvent(e))
}

// ListOpen godoc
// @Summary      Eventos abiertos
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        tenant_id  query  string  false  "restaurante; con restaurante en el token solo se acepta ese"
// @Param        limit      query  int     false  "máximo"
// @Param        offset     query  int     false  "desplazamiento"
// @Success      200  {array}  dto.EventResponse
// @Router       /api/events [get]
func (h *EventHandler) ListOpen(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	page.DefaultPage()
	list, err := h.uc.ListOpen(c.UserContext(), GetScope(c), h.tenantFilter(c), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.EventResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.FromEvent(e))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar evento abierto
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del evento"
// @Param        body  body  dto.UpdateEventRequest  true  "cambios"
// @Success      200   {object}  dto.EventResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	e, err := h.uc.Update(c.UserContext(), GetScope(c), c.Params("id"), inventory.EventUpdate{
		Guests:           in.Guests,
		Hours:            in.Hours,
		RemoveProductIDs: in.RemoveProductIDs,
		RemoveFoodIDs:    in.RemoveFoodIDs,
		SetProducts:      toEventProductLines(in.Products),
		SetFoods:         toEventFoodLines(in.Foods),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromEvent(e))
}

// Delete godoc
// @Summary      Borrar evento abierto
// @Tags         events
// @Security     Bearer
// @Param        id  path  string  true  "ID del evento"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetScope(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Finalize godoc
// @Summary      Finalizar evento
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del evento"
// @Success      200  {object}  dto.EventResponse
// @Router       /api/events/{id}/finalize [post]
func (h *EventHandler) Finalize(c *fiber.Ctx) error {
	e, err := h.uc.Finalize(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromEvent(e))
}

// MarkWrittenOff godoc
// @Summary      Marcar stock del evento como dado de baja
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true   "ID del evento"
// @Param        body  body  dto.WriteOffRequest  false  "observación"
// @Success      200   {object}  dto.EventResponse
// @Router       /api/events/{id}/write-off [post]
func (h *EventHandler) MarkWrittenOff(c *fiber.Ctx) error {
	var in dto.WriteOffRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	e, err := h.uc.MarkWrittenOff(c.UserContext(), GetScope(c), c.Params("id"), in.Note)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromEvent(e))
}

// UnmarkWrittenOff godoc
// @Summary      Quitar la marca de baja del evento
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del evento"
// @Success      200  {object}  dto.EventResponse
// @Router       /api/events/{id}/write-off [delete]
func (h *EventHandler) UnmarkWrittenOff(c *fiber.Ctx) error {
	e, err := h.uc.UnmarkWrittenOff(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromEvent(e))
}

// Consolidated godoc
// @Summary      Consumo consolidado de eventos
// @Description  Suma bebidas (botellas, dosis, mL) y alimentos de los eventos entre from y to (inclusive).
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        from       query  string  true   "YYYY-MM-DD"
// @Param        to         query  string  true   "YYYY-MM-DD inclusive"
// @Param        tenant_id  query  string  false  "restaurante"
// @Success      200  {object}  dto.EventConsolidatedResponse
// @Router       /api/events/consolidated [get]
func (h *EventHandler) Consolidated(c *fiber.Ctx) error {
	rep, err := h.consolidated(c)
	if err != nil || rep == nil {
		return err
	}
	out := dto.EventConsolidatedResponse{
		From:     rep.From,
		To:       rep.To,
		Products: make([]dto.EventConsumptionResponse, 0, len(rep.Products)),
		Foods:    make([]dto.EventFoodConsumptionResponse, 0, len(rep.Foods)),
	}
	for _, p := range rep.Products {
		out.Products = append(out.Products, dto.EventConsumptionResponse{
			ProductID: p.ProductID, ProductName: p.ProductName, Bottles: p.Bottles, Doses: p.Doses, ML: p.ML,
		})
	}
	for _, f := range rep.Foods {
		out.Foods = append(out.Foods, dto.EventFoodConsumptionResponse{
			FoodID: f.FoodID, FoodName: f.FoodName, Unit: f.Unit, Quantity: f.Quantity,
		})
	}
	return c.JSON(out)
}

// ExportConsolidated godoc
// @Summary      Consumo consolidado de eventos en PDF
// @Tags         events
// @Security     Bearer
// @Produce      application/pdf
// @Param        from       query  string  true   "YYYY-MM-DD"
// @Param        to         query  string  true   "YYYY-MM-DD inclusive"
// @Param        tenant_id  query  string  false  "restaurante"
// @Success      200  {file}  binary
// @Router       /api/events/consolidated/export [get]
func (h *EventHandler) ExportConsolidated(c *fiber.Ctx) error {
	rep, err := h.consolidated(c)
	if err != nil || rep == nil {
		return err
	}
	tenantName := ""
	if rep.TenantID != nil {
		t, err := h.tenants.GetByID(c.UserContext(), *rep.TenantID)
		if err != nil {
			return writeError(c, h.log, err)
		}
		tenantName = t.Name
	}
	body, err := h.pdf.GenerateEventReport(c.UserContext(), rep, tenantName)
	if err != nil {
		return writeError(c, h.log, err)
	}
	name := fmt.Sprintf("eventos_%s_%s.pdf", rep.From.Format("20060102"), rep.To.AddDate(0, 0, -1).Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(body)
}

// consolidated rango inclusivo de días -> [from, to+1). rep nil con err nil = respuesta ya escrita.
func (h *EventHandler) consolidated(c *fiber.Ctx) (*inventory.EventConsolidated, error) {
	from, okFrom := parseDay(c.Query("from"), h.tz, time.Time{})
	to, okTo := parseDay(c.Query("to"), h.tz, time.Time{})
	if !okFrom || !okTo || from.IsZero() || to.IsZero() {
		return nil, badRequest(c, "VALIDATION", "from y to son requeridos (YYYY-MM-DD)")
	}
	rep, err := h.uc.Consolidated(c.UserContext(), GetScope(c), from, to.AddDate(0, 0, 1), h.tenantFilter(c))
	if err != nil {
		return nil, writeError(c, h.log, err)
	}
	return rep, nil
}

// tenantFilter tenant_id del query; nil si falta. Con restaurante en el token el caso de uso
// ignora el filtro si coincide y responde 403 si es otro.
func (h *EventHandler) tenantFilter(c *fiber.Ctx) *string {
	tid := c.Query("tenant_id")
	if tid == "" {
		return nil
	}
	return &tid
}

func toEventProductLines(in []dto.EventProductRequest) []inventory.EventProductLine {
	out := make([]inventory.EventProductLine, 0, len(in))
	for _, p := range in {
		out = append(out, inventory.EventProductLine{ProductID: p.ProductID, Bottles: p.Bottles, Doses: p.Doses})
	}
	return out
}

func toEventFoodLines(in []dto.EventFoodRequest) []inventory.EventFoodLine {
	out := make([]inventory.EventFoodLine, 0, len(in))
	for _, f := range in {
		out = append(out, inventory.EventFoodLine{FoodID: f.FoodID, Quantity: f.Quantity})
	}
	return out
}
