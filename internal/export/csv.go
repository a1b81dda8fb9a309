package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/joseph-ayodele/caja-extractor/internal/entity"
)

// Columns in export order.
var Columns = []string{"Archivo", "Apertura", "Cierre", "V_Bruta", "Total", "Efectivo", "Datafono", "Total_Egresos", "Diferencia"}

// csvRow is one exported line; gocsv matches columns by header name.
type csvRow struct {
	Archivo      string `csv:"Archivo"`
	Apertura     string `csv:"Apertura"`
	Cierre       string `csv:"Cierre"`
	VBruta       int64  `csv:"V_Bruta"`
	Total        int64  `csv:"Total"`
	Efectivo     int64  `csv:"Efectivo"`
	Datafono     int64  `csv:"Datafono"`
	TotalEgresos int64  `csv:"Total_Egresos"`
	Diferencia   int64  `csv:"Diferencia"`
}

func toRow(r entity.Record) csvRow {
	return csvRow{
		Archivo:      r.SourceName,
		Apertura:     r.OpeningTime,
		Cierre:       r.ClosingTime,
		VBruta:       r.GrossSales,
		Total:        r.Total,
		Efectivo:     r.CashAmount,
		Datafono:     r.CardAmount,
		TotalEgresos: r.TotalExpenses,
		Diferencia:   r.Difference,
	}
}

func (c csvRow) record() entity.Record {
	return entity.Record{
		SourceName:    c.Archivo,
		OpeningTime:   c.Apertura,
		ClosingTime:   c.Cierre,
		GrossSales:    c.VBruta,
		Total:         c.Total,
		CashAmount:    c.Efectivo,
		CardAmount:    c.Datafono,
		TotalExpenses: c.TotalEgresos,
		Difference:    c.Diferencia,
	}
}

// WriteCSV writes a header line and one line per record.
func WriteCSV(w io.Writer, recs []entity.Record) error {
	rows := make([]csvRow, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, toRow(r))
	}
	if len(rows) == 0 {
		// gocsv writes nothing for an empty slice; keep the header.
		if _, err := fmt.Fprintln(w, strings.Join(Columns, ",")); err != nil {
			return fmt.Errorf("csv write: %w", err)
		}
		return nil
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	return nil
}

// ReadCSV parses a file written by WriteCSV back into records.
func ReadCSV(r io.Reader) ([]entity.Record, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	recs := make([]entity.Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, row.record())
	}
	return recs, nil
}
