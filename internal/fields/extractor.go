// Package fields pulls the summary figures out of the plain text of a
// CONEXION POS "COMPROBANTE INFORME DIARIO" report.
package fields

import (
	"errors"
	"log/slog"
	"regexp"

	"github.com/joseph-ayodele/caja-extractor/internal/entity"
)

// The multi-line patterns must stay lazy ([\s\S]*?) so that a label recurring
// later in the report (per payment method totals) is never picked up.
var (
	reOpening  = regexp.MustCompile(`A:\s*(\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2}:\d{2}\s+[AP]M)`)
	reClosing  = regexp.MustCompile(`C:\s*(\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2}:\d{2}\s+[AP]M)`)
	reInvoices = regexp.MustCompile(`DATOS DE FACTURAS[\s\S]*?V\.\s*Bruta\s*:\s*\$?([\d,]+)[\s\S]*?Total\s*:\s*\$?([\d,]+)`)
	reCash     = regexp.MustCompile(`Medio\s*:\s*EFECTIVO[\s\S]*?Val\.\s*Ventas\s*:\s*\$?([\d,]+)`)
	reCard     = regexp.MustCompile(`Medio\s*:\s*DATAFONO[\s\S]*?Val\.\s*Ventas\s*:\s*\$?([\d,]+)`)
	reExpenses = regexp.MustCompile(`DETALLE DE EGRESOS[\s\S]*?Total\s*:\s*\$?([\d,]+)`)
	reDiff     = regexp.MustCompile(`Diferencia:\s*\$?([\d,]+)`)
)

// Extractor turns report text into an entity.Record.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract searches every field independently over the whole text. Missing
// fields keep their zero value. Amounts that fail integer conversion are
// reported through the returned error; the record still carries every field
// that did convert.
func (e *Extractor) Extract(text string) (entity.Record, error) {
	var (
		rec  entity.Record
		errs []error
	)

	amount := func(field, raw string, dst *int64) {
		n, err := ParseAmount(raw)
		if err != nil {
			var ae *AmountError
			if errors.As(err, &ae) {
				ae.Field = field
			}
			errs = append(errs, err)
			return
		}
		*dst = n
	}

	if m := reOpening.FindStringSubmatch(text); m != nil {
		rec.OpeningTime = m[1]
	}
	if m := reClosing.FindStringSubmatch(text); m != nil {
		rec.ClosingTime = m[1]
	}
	if m := reInvoices.FindStringSubmatch(text); m != nil {
		amount("gross_sales", m[1], &rec.GrossSales)
		amount("total", m[2], &rec.Total)
	}
	if m := reCash.FindStringSubmatch(text); m != nil {
		amount("cash_amount", m[1], &rec.CashAmount)
	}
	if m := reCard.FindStringSubmatch(text); m != nil {
		amount("card_amount", m[1], &rec.CardAmount)
	}
	if m := reExpenses.FindStringSubmatch(text); m != nil {
		amount("total_expenses", m[1], &rec.TotalExpenses)
	}
	if m := reDiff.FindStringSubmatch(text); m != nil {
		amount("difference", m[1], &rec.Difference)
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		e.logger.Warn("fields.extract.partial", "errors", len(errs), "error", err)
		return rec, err
	}
	return rec, nil
}
