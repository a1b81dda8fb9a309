package export

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/joseph-ayodele/caja-extractor/internal/entity"
)

// WritePreview renders recs as a console table with currency-formatted
// amounts and a totals footer.
func WritePreview(w io.Writer, recs []entity.Record, totals entity.Totals) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, r := range recs {
		table.Append([]string{
			r.SourceName,
			r.OpeningTime,
			r.ClosingTime,
			FormatCurrency(r.GrossSales),
			FormatCurrency(r.Total),
			FormatCurrency(r.CashAmount),
			FormatCurrency(r.CardAmount),
			FormatCurrency(r.TotalExpenses),
			FormatCurrency(r.Difference),
		})
	}
	table.SetFooter([]string{
		"TOTAL", "", "",
		FormatCurrency(totals.GrossSales),
		FormatCurrency(totals.Total),
		FormatCurrency(totals.CashAmount),
		FormatCurrency(totals.CardAmount),
		FormatCurrency(totals.TotalExpenses),
		FormatCurrency(totals.Difference),
	})
	table.Render()
}
