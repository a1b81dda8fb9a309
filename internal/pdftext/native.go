package pdftext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractNative reads the document in-process. The file handle is closed
// before returning, including when the reader panics on a malformed file.
func (e *Extractor) extractNative(path string) (pages []string, warnings []string, unreadable []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("pdf reader: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("close pdf failed", "path", path, "error", cerr)
		}
	}()

	n := r.NumPage()
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			warnings = append(warnings, fmt.Sprintf("page %d: missing", i))
			unreadable = append(unreadable, i)
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, err))
			unreadable = append(unreadable, i)
			continue
		}
		pages = append(pages, rowsToText(rows))
	}
	if n == 0 {
		return nil, warnings, nil, fmt.Errorf("pdf has no pages")
	}
	return pages, warnings, unreadable, nil
}

// rowsToText lays rows out top to bottom, one line each.
func rowsToText(rows pdf.Rows) string {
	sorted := make(pdf.Rows, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position > sorted[j].Position })

	lines := make([]string, 0, len(sorted))
	for _, row := range sorted {
		lines = append(lines, rowText(row.Content))
	}
	return strings.Join(lines, "\n")
}

// rowText concatenates the glyph runs of one row, inserting a space where
// the horizontal gap between runs is wider than a fraction of the font size.
func rowText(items pdf.TextHorizontal) string {
	sorted := make([]pdf.Text, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var b strings.Builder
	for i, t := range sorted {
		if i > 0 {
			prev := sorted[i-1]
			end := prev.X + prev.W
			if prev.W == 0 {
				end = prev.X + float64(len([]rune(prev.S)))*prev.FontSize*0.5
			}
			if t.X-end > prev.FontSize*0.2 && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return b.String()
}
