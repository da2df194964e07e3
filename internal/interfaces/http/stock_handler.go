package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
	"github.com/jhoicas/barstock-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// StockHandler saldos, entradas, transferencias y conteos del bar del alcance.
type StockHandler struct {
	reports   *inventory.ReportUseCase
	receipts  *inventory.ReceiptUseCase
	transfers *inventory.TransferUseCase
	counts    *inventory.CountUseCase
	log       *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(reports *inventory.ReportUseCase, receipts *inventory.ReceiptUseCase, transfers *inventory.TransferUseCase, counts *inventory.CountUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{reports: reports, receipts: receipts, transfers: transfers, counts: counts, log: log}
}

// Balances godoc
// @Summary      Saldos del bar actual
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BalanceResponse
// @Failure      428  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Balances(c *fiber.Ctx) error {
	list, err := h.reports.Balances(c.UserContext(), GetScope(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.FromBalanceView(b))
	}
	return c.JSON(out)
}

// RegisterReceipt godoc
// @Summary      Entrada de mercadería al bar central
// @Description  Cada línea válida suma botellas al central; las inválidas se informan sin bloquear el resto.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiptRequest  true  "líneas"
// @Success      200   {object}  dto.BatchResponse[dto.ReceiptResponse]
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/receipts [post]
func (h *StockHandler) RegisterReceipt(c *fiber.Ctx) error {
	var in dto.ReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	lines := make([]inventory.ReceiptLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.ReceiptLine{ProductID: l.ProductID, Quantity: lineQuantity(l.Quantity)})
	}
	batch, err := h.receipts.Register(c.UserContext(), GetScope(c), lines, in.Note)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.BatchResponse[dto.ReceiptResponse]{
		Applied: mapList(batch.Applied, dto.FromReceipt),
		Errors:  toLineErrors(batch.Errors),
	})
}

// ListReceipts godoc
// @Summary      Últimas entradas del bar central
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo (por defecto 20)"
// @Success      200  {array}  dto.ReceiptResponse
// @Router       /api/stock/receipts [get]
func (h *StockHandler) ListReceipts(c *fiber.Ctx) error {
	list, err := h.receipts.List(c.UserContext(), GetScope(c), queryLimit(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(mapList(list, dto.FromReceipt))
}

// Transfer godoc
// @Summary      Transferir del bar actual a otro bar del restaurante
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "destino, producto, cantidades"
// @Success      201   {object}  dto.TransferResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transfers [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	t, err := h.transfers.Transfer(c.UserContext(), GetScope(c), inventory.TransferInput{
		DestinationID: in.DestinationID,
		ProductID:     in.ProductID,
		Bottles:       in.Bottles,
		Doses:         in.Doses,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransfer(t))
}

// TransferHistory godoc
// @Summary      Transferencias de entrada y salida del bar actual
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo (por defecto 20)"
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/stock/transfers [get]
func (h *StockHandler) TransferHistory(c *fiber.Ctx) error {
	list, err := h.transfers.History(c.UserContext(), GetScope(c), queryLimit(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(mapList(list, dto.FromTransfer))
}

// SubmitCount godoc
// @Summary      Registrar conteo físico
// @Description  Reemplaza el saldo por lo contado. Líneas vacías se ignoran; valores inválidos cuentan como cero.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CountRequest  true  "líneas"
// @Success      200   {object}  dto.BatchResponse[dto.CountResponse]
// @Router       /api/stock/counts [post]
func (h *StockHandler) SubmitCount(c *fiber.Ctx) error {
	var in dto.CountRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	lines := make([]inventory.CountLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.CountLine{ProductID: l.ProductID, Bottles: l.Bottles.String(), Doses: l.Doses.String()})
	}
	batch, err := h.counts.SubmitBatch(c.UserContext(), GetScope(c), lines, in.Note)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.BatchResponse[dto.CountResponse]{
		Applied: mapList(batch.Applied, dto.FromCount),
		Skipped: batch.Skipped,
		Errors:  toLineErrors(batch.Errors),
	})
}

// CountHistory godoc
// @Summary      Conteos del bar actual
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo (por defecto 20)"
// @Success      200  {array}  dto.CountResponse
// @Router       /api/stock/counts [get]
func (h *StockHandler) CountHistory(c *fiber.Ctx) error {
	list, err := h.counts.History(c.UserContext(), GetScope(c), queryLimit(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(mapList(list, dto.FromCount))
}

// mapList aplica fn a cada elemento; nunca devuelve nil (JSON "[]").
func mapList[E any, T any](list []*E, fn func(*E) T) []T {
	out := make([]T, 0, len(list))
	for _, e := range list {
		out = append(out, fn(e))
	}
	return out
}

func queryLimit(c *fiber.Ctx) int {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return limit
}

// lineQuantity interpreta la cantidad de una línea. Texto inválido queda en cero y el caso de uso
// rechaza solo esa línea.
func lineQuantity(q dto.QuantityText) decimal.Decimal {
	d, err := stock.ParseQuantity(q.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
