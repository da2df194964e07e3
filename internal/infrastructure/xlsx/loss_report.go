// Package xlsx exporta reportes de solo lectura a planillas Excel.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/barstock-api/internal/application/inventory"
)

const (
	lossSheet       = "Pérdidas"
	byProductSheet  = "Por producto"
	byLocationSheet = "Por bar"
)

var (
	lossHeader     = []interface{}{"Fecha", "Bar", "Código", "Producto", "Botellas", "Dosis", "Motivo", "Observación", "De baja"}
	subtotalHeader = []interface{}{"Nombre", "Registros", "Botellas", "Dosis"}
)

// WriteLossReport escribe el reporte de pérdidas como .xlsx en w.
func WriteLossReport(w io.Writer, report *inventory.LossReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", lossSheet); err != nil {
		return fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}

	if err := f.SetSheetRow(lossSheet, "A1", &lossHeader); err != nil {
		return fmt.Errorf("xlsx: cabecera: %w", err)
	}
	_ = f.SetRowStyle(lossSheet, 1, 1, bold)

	rowNum := 2
	for _, r := range report.Rows {
		l := r.Loss
		written := "No"
		if l.WrittenOff {
			written = "Sí"
		}
		b, _ := l.Bottles.Float64()
		d, _ := l.Doses.Float64()
		values := []interface{}{
			l.RegisteredAt.Format("02/01/2006 15:04"),
			r.LocationName,
			r.ProductCode,
			r.ProductName,
			b,
			d,
			string(l.Reason),
			l.Note,
			written,
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(lossSheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", rowNum, err)
		}
		rowNum++
	}

	tb, _ := report.Total.Bottles.Float64()
	td, _ := report.Total.Doses.Float64()
	total := []interface{}{"TOTAL", "", "", "", tb, td}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := f.SetSheetRow(lossSheet, cell, &total); err != nil {
		return fmt.Errorf("xlsx: total: %w", err)
	}
	_ = f.SetRowStyle(lossSheet, rowNum, rowNum, bold)
	_ = f.SetColWidth(lossSheet, "A", "A", 18)
	_ = f.SetColWidth(lossSheet, "D", "D", 30)
	_ = f.SetColWidth(lossSheet, "H", "H", 40)

	if err := writeSubtotals(f, byProductSheet, report.ByProduct, bold); err != nil {
		return err
	}
	if err := writeSubtotals(f, byLocationSheet, report.ByLocation, bold); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}

// writeSubtotals agrega una hoja con un subtotal por fila.
func writeSubtotals(f *excelize.File, sheet string, rows []inventory.LossSubtotal, bold int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("xlsx: hoja %s: %w", sheet, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &subtotalHeader); err != nil {
		return fmt.Errorf("xlsx: cabecera %s: %w", sheet, err)
	}
	_ = f.SetRowStyle(sheet, 1, 1, bold)
	for i, st := range rows {
		b, _ := st.Total.Bottles.Float64()
		d, _ := st.Total.Doses.Float64()
		values := []interface{}{st.Name, st.Count, b, d}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: %s fila %d: %w", sheet, i+2, err)
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 30)
	return nil
}
