package constants

import "strings"

// PDF is the only source format the extractor accepts.
const PDF = "PDF"

// AllowedExtensions holds the file extensions picked up from directories and uploads.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns the source format for ext, or "" when unsupported.
func MapExtToFormat(ext string) string {
	if _, ok := AllowedExtensions[NormalizeExt(ext)]; ok {
		return PDF
	}
	return ""
}

// ExportFormat is a supported output file type.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
	ExportJSON ExportFormat = "json"
)

// ParseExportFormat maps user input to an ExportFormat. Empty input means CSV.
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", ExportCSV:
		return ExportCSV, true
	case ExportXLSX:
		return ExportXLSX, true
	case ExportJSON:
		return ExportJSON, true
	}
	return "", false
}

// ContentType returns the MIME type used when serving f.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportJSON:
		return "application/json"
	default:
		return "text/csv; charset=utf-8"
	}
}
