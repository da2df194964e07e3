package inventory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
)

// ShiftStartHour hora local en que empieza el día operacional del bar.
const ShiftStartHour = 19

// CountWindow cómo se interpreta el día pedido en el reporte de conteo actual.
type CountWindow string

const (
	// CountWindowOperational de las 19:00 del día hasta las 19:00 del siguiente.
	CountWindowOperational CountWindow = "operational"
	// CountWindowCalendar de 00:00 a 00:00.
	CountWindowCalendar CountWindow = "calendar"
)

// ParseCountWindow acepta también los nombres en portugués. Vacío -> operacional.
func ParseCountWindow(s string) (CountWindow, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "operational", "operacional":
		return CountWindowOperational, true
	case "calendar", "calendario":
		return CountWindowCalendar, true
	}
	return "", false
}

// CurrentCountRow último conteo de un producto en un bar.
type CurrentCountRow struct {
	LocationID   string
	LocationName string
	ProductCode  string
	ProductName  string
	Count        entity.Count
}

// ProductTotal suma de cantidades de un producto en todos los bares.
type ProductTotal struct {
	ProductID   string
	ProductCode string
	ProductName string
	Total       stock.Quantities
}

// CurrentCountReport últimos conteos del restaurante, opcionalmente dentro de una ventana.
type CurrentCountReport struct {
	Window CountWindow
	From   *time.Time
	To     *time.Time
	Rows   []CurrentCountRow
	Totals []ProductTotal
}

// CurrentCounts último conteo por producto y bar del restaurante. Con day, solo los conteos
// dentro de la ventana (operacional o calendario) de ese día.
func (uc *ReportUseCase) CurrentCounts(ctx context.Context, scope entity.Scope, day *time.Time, window CountWindow) (*CurrentCountReport, error) {
	if err := scope.RequireTenant(); err != nil {
		return nil, err
	}
	out := &CurrentCountReport{Window: window}
	if day != nil {
		y, m, d := day.In(uc.tz).Date()
		var from time.Time
		switch window {
		case CountWindowOperational:
			from = time.Date(y, m, d, ShiftStartHour, 0, 0, 0, uc.tz)
		case CountWindowCalendar:
			from = time.Date(y, m, d, 0, 0, 0, 0, uc.tz)
		default:
			return nil, domain.ErrInvalidInput
		}
		to := from.AddDate(0, 0, 1)
		out.From, out.To = &from, &to
	}
	counts, err := uc.repos.Counts.ListLatest(ctx, scope.TenantID, out.From, out.To)
	if err != nil {
		return nil, err
	}
	locName, err := uc.locationNames(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}
	names := newProductNames(uc.repos.Products)

	totals := map[string]*ProductTotal{}
	for _, c := range counts {
		code, name, err := names.get(ctx, c.ProductID)
		if err != nil {
			return nil, err
		}
		out.Rows = append(out.Rows, CurrentCountRow{
			LocationID:   c.LocationID,
			LocationName: locName[c.LocationID],
			ProductCode:  code,
			ProductName:  name,
			Count:        *c,
		})
		t, ok := totals[c.ProductID]
		if !ok {
			t = &ProductTotal{ProductID: c.ProductID, ProductCode: code, ProductName: name, Total: stock.Zero()}
			totals[c.ProductID] = t
		}
		t.Total = t.Total.Plus(stock.Quantities{Bottles: c.Bottles, Doses: c.Doses})
	}
	sort.SliceStable(out.Rows, func(i, j int) bool {
		if out.Rows[i].LocationName != out.Rows[j].LocationName {
			return out.Rows[i].LocationName < out.Rows[j].LocationName
		}
		return out.Rows[i].ProductName < out.Rows[j].ProductName
	})
	for _, t := range totals {
		out.Totals = append(out.Totals, *t)
	}
	sort.Slice(out.Totals, func(i, j int) bool { return out.Totals[i].ProductName < out.Totals[j].ProductName })
	return out, nil
}

// OutflowLimit cantidad de requisiciones decididas que se listan sin filtro de período.
const OutflowLimit = 50

// StockOutflowFilter filtros del reporte de salidas. Month sin Year usa el año en curso;
// Year solo cubre el año entero.
type StockOutflowFilter struct {
	Product string
	Month   int
	Year    int
}

// OutflowRow requisición decidida con el producto resuelto.
type OutflowRow struct {
	Requisition *entity.Requisition
	ProductCode string
	ProductName string
}

// StockOutflowReport requisiciones decididas del bar y las botellas efectivamente aprobadas.
type StockOutflowReport struct {
	From     *time.Time
	To       *time.Time
	Rows     []OutflowRow
	Approved decimal.Decimal
}

// StockOutflow requisiciones ya decididas (aprobadas, negadas o sin stock) del bar del alcance.
// Sin período devuelve las últimas OutflowLimit.
func (uc *ReportUseCase) StockOutflow(ctx context.Context, scope entity.Scope, f StockOutflowFilter) (*StockOutflowReport, error) {
	if err := scope.RequireLocation(); err != nil {
		return nil, err
	}
	from, to, err := uc.period(f.Month, f.Year)
	if err != nil {
		return nil, err
	}
	filter := repository.RequisitionHistoryFilter{
		LocationID:    scope.LocationID,
		From:          from,
		To:            to,
		Statuses:      []entity.RequisitionStatus{entity.RequisitionApproved, entity.RequisitionDenied, entity.RequisitionStockFailure},
		ProductSearch: strings.TrimSpace(f.Product),
	}
	if from == nil {
		filter.Limit = OutflowLimit
	}
	list, err := uc.repos.Requisitions.ListHistory(ctx, filter)
	if err != nil {
		return nil, err
	}
	names := newProductNames(uc.repos.Products)
	out := &StockOutflowReport{From: from, To: to, Approved: decimal.Zero}
	for _, r := range list {
		code, name, err := names.get(ctx, r.ProductID)
		if err != nil {
			return nil, err
		}
		out.Rows = append(out.Rows, OutflowRow{Requisition: r, ProductCode: code, ProductName: name})
		if r.Status == entity.RequisitionApproved {
			out.Approved = out.Approved.Add(r.Quantity)
		}
	}
	return out, nil
}

// period ventana [from, to) de un mes o de un año; ambos cero = sin ventana.
func (uc *ReportUseCase) period(month, year int) (from, to *time.Time, err error) {
	if month == 0 && year == 0 {
		return nil, nil, nil
	}
	if month < 0 || month > 12 || (year != 0 && year < 2000) {
		return nil, nil, domain.ErrInvalidInput
	}
	if year == 0 {
		year = time.Now().In(uc.tz).Year()
	}
	var start, end time.Time
	if month == 0 {
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, uc.tz)
		end = start.AddDate(1, 0, 0)
	} else {
		start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.tz)
		end = start.AddDate(0, 1, 0)
	}
	return &start, &end, nil
}

// RequisitionCountRow lo aprobado de un producto en un día contra el último conteo de ese día.
// Difference es |botellas contadas - botellas aprobadas|; sin conteo se compara contra cero.
type RequisitionCountRow struct {
	Day         time.Time
	ProductID   string
	ProductCode string
	ProductName string
	Requested   decimal.Decimal
	Counted     stock.Quantities
	HasCount    bool
	Difference  decimal.Decimal
}

// RequisitionCountReport consolidado mensual del bar, días más recientes primero.
type RequisitionCountReport struct {
	From time.Time
	To   time.Time
	Rows []RequisitionCountRow
}

// RequisitionsVsCounts suma las requisiciones aprobadas del bar por día y producto y las compara
// con el último conteo del mismo día calendario. Month/Year cero = mes en curso.
func (uc *ReportUseCase) RequisitionsVsCounts(ctx context.Context, scope entity.Scope, month, year int) (*RequisitionCountReport, error) {
	if err := scope.RequireLocation(); err != nil {
		return nil, err
	}
	now := time.Now().In(uc.tz)
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	from, to, err := uc.period(month, year)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.Requisitions.ListHistory(ctx, repository.RequisitionHistoryFilter{
		LocationID: scope.LocationID,
		From:       from,
		To:         to,
		Statuses:   []entity.RequisitionStatus{entity.RequisitionApproved},
	})
	if err != nil {
		return nil, err
	}
	counts, err := uc.repos.Counts.ListByLocationBetween(ctx, scope.LocationID, *from, *to)
	if err != nil {
		return nil, err
	}

	type key struct {
		day  string
		prod string
	}
	// counts viene más reciente primero: el primero de cada (día, producto) es el último del día.
	lastCount := map[key]*entity.Count{}
	for _, c := range counts {
		k := key{c.CountedAt.In(uc.tz).Format(time.DateOnly), c.ProductID}
		if _, ok := lastCount[k]; !ok {
			lastCount[k] = c
		}
	}

	rows := map[key]*RequisitionCountRow{}
	names := newProductNames(uc.repos.Products)
	for _, r := range list {
		day := startOfDay(r.RequestedAt, uc.tz)
		k := key{day.Format(time.DateOnly), r.ProductID}
		row, ok := rows[k]
		if !ok {
			code, name, err := names.get(ctx, r.ProductID)
			if err != nil {
				return nil, err
			}
			row = &RequisitionCountRow{Day: day, ProductID: r.ProductID, ProductCode: code, ProductName: name,
				Requested: decimal.Zero, Counted: stock.Zero()}
			if c, ok := lastCount[k]; ok {
				row.Counted = stock.Quantities{Bottles: c.Bottles, Doses: c.Doses}
				row.HasCount = true
			}
			rows[k] = row
		}
		row.Requested = row.Requested.Add(r.Quantity)
	}

	out := &RequisitionCountReport{From: *from, To: *to}
	for _, row := range rows {
		row.Difference = row.Counted.Bottles.Sub(row.Requested).Abs()
		out.Rows = append(out.Rows, *row)
	}
	sort.Slice(out.Rows, func(i, j int) bool {
		if !out.Rows[i].Day.Equal(out.Rows[j].Day) {
			return out.Rows[i].Day.After(out.Rows[j].Day)
		}
		return out.Rows[i].ProductName < out.Rows[j].ProductName
	})
	return out, nil
}
