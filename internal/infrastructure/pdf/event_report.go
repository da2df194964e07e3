// Package pdf genera el consolidado de consumo de eventos en A4.
//
// Layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + restaurante   │  Período                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BEBIDAS: Producto | Botellas | Dosis | mL                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALIMENTOS: Alimento | Cantidad | Unidad                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 30, Blue: 45}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// EventReportGenerator arma el PDF del consolidado de eventos con Maroto v2.
type EventReportGenerator struct{}

// NewEventReportGenerator construye el generador.
func NewEventReportGenerator() *EventReportGenerator { return &EventReportGenerator{} }

// GenerateEventReport genera el PDF y devuelve sus bytes. tenantName puede ir vacío.
func (g *EventReportGenerator) GenerateEventReport(
	_ context.Context,
	report *inventory.EventConsolidated,
	tenantName string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Consolidado de eventos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report, tenantName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("BEBIDAS"))
	m.AddRows(tableHeaderRow([]string{"Producto", "Botellas", "Dosis", "mL"}, []int{6, 2, 2, 2}))
	for _, r := range productRows(report.Products) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionRow("ALIMENTOS"))
	m.AddRows(tableHeaderRow([]string{"Alimento", "Cantidad", "Unidad"}, []int{6, 3, 3}))
	for _, r := range foodRows(report.Foods) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report.Products))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *inventory.EventConsolidated, tenantName string) core.Row {
	period := fmt.Sprintf("%s a %s",
		report.From.Format("02/01/2006"),
		report.To.AddDate(0, 0, -1).Format("02/01/2006"),
	)
	return row.New(16).Add(
		col.New(7).Add(
			text.New("CONSOLIDADO DE EVENTOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(tenantName, "Todos los restaurantes"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{Size: 10, Align: align.Right, Top: 7}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func productRows(items []entity.EventConsumption) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	result := make([]core.Row, 0, len(items))
	for _, p := range items {
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(nonEmpty(p.ProductName, p.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", p.Bottles), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", p.Doses), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(p.ML.StringFixed(0), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func foodRows(items []entity.EventFoodConsumption) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	result := make([]core.Row, 0, len(items))
	for _, f := range items {
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(nonEmpty(f.FoodName, f.FoodID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(f.Quantity.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(f.Unit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(items []entity.EventConsumption) core.Row {
	var bottles, doses int64
	ml := decimal.Zero
	for _, p := range items {
		bottles += p.Bottles
		doses += p.Doses
		ml = ml.Add(p.ML)
	}
	bold := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: a, Top: 1, Right: 1, Color: colorPrimary})
	}
	return row.New(8).Add(
		col.New(6).Add(bold("TOTAL", align.Left)),
		col.New(2).Add(bold(fmt.Sprintf("%d", bottles), align.Right)),
		col.New(2).Add(bold(fmt.Sprintf("%d", doses), align.Right)),
		col.New(2).Add(bold(ml.StringFixed(0), align.Right)),
	)
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Sin consumo en el período.", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
