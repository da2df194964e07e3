package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
	"github.com/jhoicas/barstock-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// ReportHandler reportes de solo lectura del restaurante.
type ReportHandler struct {
	uc  *inventory.ReportUseCase
	tz  *time.Location
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *inventory.ReportUseCase, tz *time.Location, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, tz: tz, log: log}
}

// CountDifferences godoc
// @Summary      Diferencias entre los dos últimos conteos
// @Description  Por producto y bar del restaurante. Los totales son por producto y solo suman filas con conteo anterior.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CountDifferenceResponse
// @Router       /api/reports/count-differences [get]
func (h *ReportHandler) CountDifferences(c *fiber.Ctx) error {
	rep, err := h.uc.CountDifferences(c.UserContext(), GetScope(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.CountDifferenceResponse{
		Rows:   make([]dto.CountDifferenceRow, 0, len(rep.Rows)),
		Totals: make([]dto.CountDifferenceTotal, 0, len(rep.Totals)),
	}
	for _, t := range rep.Totals {
		out.Totals = append(out.Totals, dto.CountDifferenceTotal{
			ProductID: t.ProductID, ProductName: t.ProductName, BottlesDiff: t.BottlesDiff, DosesDiff: t.DosesDiff,
		})
	}
	for _, r := range rep.Rows {
		row := dto.CountDifferenceRow{
			LocationID:   r.LocationID,
			LocationName: r.LocationName,
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Last:         dto.CountSnapshot{Bottles: r.Last.Bottles, Doses: r.Last.Doses, CountedAt: r.Last.CountedAt},
			BottlesDiff:  r.BottlesDiff,
			DosesDiff:    r.DosesDiff,
		}
		if r.Previous != nil {
			row.Previous = &dto.CountSnapshot{Bottles: r.Previous.Bottles, Doses: r.Previous.Doses, CountedAt: r.Previous.CountedAt}
		}
		out.Rows = append(out.Rows, row)
	}
	return c.JSON(out)
}

// Losses godoc
// @Summary      Pérdidas del restaurante en un rango de días
// @Description  Con subtotales por producto y por bar. Sin rango toma el mes en curso.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "YYYY-MM-DD (por defecto el 1 del mes)"
// @Param        to           query  string  false  "YYYY-MM-DD inclusive (por defecto hoy)"
// @Param        q            query  string  false  "busca en producto y observación"
// @Param        location_id  query  string  false  "solo un bar del restaurante"
// @Param        reason       query  string  false  "motivo (acepta alias)"
// @Param        pending      query  bool    false  "solo las que no fueron dadas de baja"
// @Success      200  {object}  dto.LossReportResponse
// @Router       /api/reports/losses [get]
func (h *ReportHandler) Losses(c *fiber.Ctx) error {
	rep, err := h.lossReport(c)
	if err != nil {
		return err
	}
	if rep == nil {
		return nil
	}
	out := dto.LossReportResponse{
		LossListResponse: dto.LossListResponse{
			From:  rep.From,
			To:    rep.To,
			Items: make([]dto.LossResponse, 0, len(rep.Rows)),
			Total: quantities(rep.Total),
		},
		ByProduct:  lossSubtotals(rep.ByProduct),
		ByLocation: lossSubtotals(rep.ByLocation),
	}
	for _, r := range rep.Rows {
		item := dto.FromLoss(r.Loss)
		item.ProductCode = r.ProductCode
		item.ProductName = r.ProductName
		item.LocationName = r.LocationName
		out.Items = append(out.Items, item)
	}
	return c.JSON(out)
}

// ExportLosses godoc
// @Summary      Exportar pérdidas a Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from         query  string  false  "YYYY-MM-DD"
// @Param        to           query  string  false  "YYYY-MM-DD inclusive"
// @Param        q            query  string  false  "busca en producto y observación"
// @Param        location_id  query  string  false  "solo un bar del restaurante"
// @Param        reason       query  string  false  "motivo"
// @Param        pending      query  bool    false  "solo pendientes de baja"
// @Success      200  {file}  binary
// @Router       /api/reports/losses/export [get]
func (h *ReportHandler) ExportLosses(c *fiber.Ctx) error {
	rep, err := h.lossReport(c)
	if err != nil {
		return err
	}
	if rep == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := xlsx.WriteLossReport(&buf, rep); err != nil {
		return writeError(c, h.log, err)
	}
	name := fmt.Sprintf("perdidas_%s_%s.xlsx", rep.From.Format("20060102"), rep.To.AddDate(0, 0, -1).Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(buf.Bytes())
}

// lossReport resuelve rango y filtros y ejecuta el reporte. rep nil con err nil = respuesta ya escrita.
func (h *ReportHandler) lossReport(c *fiber.Ctx) (*inventory.LossReport, error) {
	today := time.Now().In(h.tz)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, h.tz)
	from, okFrom := parseDay(c.Query("from"), h.tz, firstOfMonth)
	to, okTo := parseDay(c.Query("to"), h.tz, today)
	if !okFrom || !okTo {
		return nil, badRequest(c, "VALIDATION", "from/to deben tener formato YYYY-MM-DD")
	}
	rep, err := h.uc.Losses(c.UserContext(), GetScope(c), inventory.LossReportFilter{
		FromDay:     from,
		ToDay:       to,
		LocationID:  c.Query("location_id"),
		Reason:      c.Query("reason"),
		PendingOnly: c.QueryBool("pending"),
		Search:      c.Query("q"),
	})
	if err != nil {
		return nil, writeError(c, h.log, err)
	}
	return rep, nil
}

// CurrentCounts godoc
// @Summary      Conteo actual del restaurante
// @Description  Último conteo por producto y bar. Con day, solo los conteos de ese día operacional (desde las 19:00) o calendario.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        day     query  string  false  "YYYY-MM-DD"
// @Param        window  query  string  false  "operational (por defecto) o calendar"
// @Success      200  {object}  dto.CurrentCountResponse
// @Router       /api/reports/current-counts [get]
func (h *ReportHandler) CurrentCounts(c *fiber.Ctx) error {
	window, ok := inventory.ParseCountWindow(c.Query("window"))
	if !ok {
		return badRequest(c, "VALIDATION", "window debe ser operational o calendar")
	}
	var day *time.Time
	if raw := c.Query("day"); raw != "" {
		d, ok := parseDay(raw, h.tz, time.Time{})
		if !ok {
			return badRequest(c, "VALIDATION", "day debe tener formato YYYY-MM-DD")
		}
		day = &d
	}
	rep, err := h.uc.CurrentCounts(c.UserContext(), GetScope(c), day, window)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.CurrentCountResponse{
		Window: string(rep.Window),
		From:   rep.From,
		To:     rep.To,
		Rows:   make([]dto.CurrentCountRow, 0, len(rep.Rows)),
		Totals: make([]dto.ProductTotal, 0, len(rep.Totals)),
	}
	for _, r := range rep.Rows {
		out.Rows = append(out.Rows, dto.CurrentCountRow{
			LocationID:   r.LocationID,
			LocationName: r.LocationName,
			ProductID:    r.Count.ProductID,
			ProductCode:  r.ProductCode,
			ProductName:  r.ProductName,
			Bottles:      r.Count.Bottles,
			Doses:        r.Count.Doses,
			CountedAt:    r.Count.CountedAt,
		})
	}
	for _, t := range rep.Totals {
		out.Totals = append(out.Totals, dto.ProductTotal{
			ProductID: t.ProductID, ProductCode: t.ProductCode, ProductName: t.ProductName, Total: quantities(t.Total),
		})
	}
	return c.JSON(out)
}

// StockOutflow godoc
// @Summary      Salidas de stock hacia el bar
// @Description  Requisiciones decididas del bar actual. Sin mes ni año devuelve las últimas 50.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        product  query  string  false  "busca en el nombre del producto"
// @Param        month    query  int     false  "mes (1-12); sin año usa el año en curso"
// @Param        year     query  int     false  "año"
// @Success      200  {object}  dto.StockOutflowResponse
// @Router       /api/reports/stock-outflow [get]
func (h *ReportHandler) StockOutflow(c *fiber.Ctx) error {
	rep, err := h.uc.StockOutflow(c.UserContext(), GetScope(c), inventory.StockOutflowFilter{
		Product: c.Query("product"),
		Month:   c.QueryInt("month", 0),
		Year:    c.QueryInt("year", 0),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.StockOutflowResponse{From: rep.From, To: rep.To, Approved: rep.Approved, Items: make([]dto.OutflowRow, 0, len(rep.Rows))}
	for _, r := range rep.Rows {
		out.Items = append(out.Items, dto.OutflowRow{
			RequisitionResponse: dto.FromRequisition(r.Requisition),
			ProductCode:         r.ProductCode,
			ProductName:         r.ProductName,
		})
	}
	return c.JSON(out)
}

// RequisitionsVsCounts godoc
// @Summary      Consolidado requisiciones vs. conteo
// @Description  Botellas aprobadas por día y producto contra el último conteo del mismo día. Por defecto el mes en curso.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  false  "mes (1-12)"
// @Param        year   query  int  false  "año"
// @Success      200  {object}  dto.RequisitionCountResponse
// @Router       /api/reports/requisitions-vs-counts [get]
func (h *ReportHandler) RequisitionsVsCounts(c *fiber.Ctx) error {
	rep, err := h.uc.RequisitionsVsCounts(c.UserContext(), GetScope(c), c.QueryInt("month", 0), c.QueryInt("year", 0))
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.RequisitionCountResponse{From: rep.From, To: rep.To, Rows: make([]dto.RequisitionCountRow, 0, len(rep.Rows))}
	for _, r := range rep.Rows {
		out.Rows = append(out.Rows, dto.RequisitionCountRow{
			Day:         r.Day.Format(time.DateOnly),
			ProductID:   r.ProductID,
			ProductCode: r.ProductCode,
			ProductName: r.ProductName,
			Requested:   r.Requested,
			Counted:     quantities(r.Counted),
			HasCount:    r.HasCount,
			Difference:  r.Difference,
		})
	}
	return c.JSON(out)
}

func quantities(q stock.Quantities) dto.QuantitiesResponse {
	return dto.QuantitiesResponse{Bottles: q.Bottles, Doses: q.Doses}
}

func lossSubtotals(in []inventory.LossSubtotal) []dto.LossSubtotal {
	out := make([]dto.LossSubtotal, 0, len(in))
	for _, st := range in {
		out = append(out, dto.LossSubtotal{ID: st.ID, Name: st.Name, Count: st.Count, Total: quantities(st.Total)})
	}
	return out
}
