package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/caja-extractor/internal/entity"
)

const (
	dataSheet    = "Datos"
	summarySheet = "Resumen"
)

// currencyFormat shows whole pesos with grouping, e.g. $1,234.
var currencyFormat = `"$"#,##0`

// WriteXLSX writes a workbook with one row per record on the Datos sheet and
// the column sums on the Resumen sheet. Amounts are stored as numbers.
func WriteXLSX(w io.Writer, recs []entity.Record, totals entity.Totals) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// NewFile starts with "Sheet1"; rename it instead of adding a new one.
	if err := f.SetSheetName(f.GetSheetName(0), dataSheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	activeIndex, _ := f.GetSheetIndex(dataSheet)
	f.SetActiveSheet(activeIndex)

	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFormat})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}

	for i, h := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(dataSheet, cell, h)
	}
	_ = f.SetCellStyle(dataSheet, "A1", "I1", header)

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(dataSheet, cell, v)
		}
		write(1, r.SourceName)
		write(2, r.OpeningTime)
		write(3, r.ClosingTime)
		write(4, r.GrossSales)
		write(5, r.Total)
		write(6, r.CashAmount)
		write(7, r.CardAmount)
		write(8, r.TotalExpenses)
		write(9, r.Difference)
		row++
	}
	if len(recs) > 0 {
		_ = f.SetCellStyle(dataSheet, "D2", fmt.Sprintf("I%d", row-1), money)
	}

	// Widen a few columns
	_ = f.SetColWidth(dataSheet, "A", "A", 32) // file
	_ = f.SetColWidth(dataSheet, "B", "C", 24) // opening/closing
	_ = f.SetColWidth(dataSheet, "D", "I", 16) // amounts

	summary := []struct {
		label string
		value int64
	}{
		{"Total Ventas Brutas", totals.GrossSales},
		{"Total", totals.Total},
		{"Total Efectivo", totals.CashAmount},
		{"Total Datafono", totals.CardAmount},
		{"Total Egresos", totals.TotalExpenses},
		{"Total Diferencia", totals.Difference},
	}
	_ = f.SetCellValue(summarySheet, "A1", "Concepto")
	_ = f.SetCellValue(summarySheet, "B1", "Valor")
	_ = f.SetCellStyle(summarySheet, "A1", "B1", header)
	for i, s := range summary {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+2), s.label)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+2), s.value)
	}
	_ = f.SetCellStyle(summarySheet, "B2", fmt.Sprintf("B%d", len(summary)+1), money)
	_ = f.SetColWidth(summarySheet, "A", "A", 24)
	_ = f.SetColWidth(summarySheet, "B", "B", 18)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
