package export

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joseph-ayodele/caja-extractor/constants"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders whole currency units for display, e.g. $1,234.
// Display only; stored values stay integers.
func FormatCurrency(n int64) string {
	return printer.Sprintf("$%d", n)
}

// FileName returns the download name for an export produced at t,
// e.g. datos_caja_20250314_223145.csv.
func FileName(format constants.ExportFormat, t time.Time) string {
	return fmt.Sprintf("datos_caja_%s.%s", t.Format("20060102_150405"), format)
}
