package pdftext

import (
	"context"
	"fmt"
	"strings"
)

func (e *Extractor) extractPdftotext(ctx context.Context, path string) ([]string, []string, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, e.logger, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		var warns []string
		if len(errb) > 0 {
			warns = append(warns, strings.TrimSpace(string(errb)))
		}
		return nil, warns, fmt.Errorf("pdftotext: %w", err)
	}

	// A form-feed \f is used as page separator; the last page ends with one too.
	text := strings.TrimSuffix(string(out), "\f")
	return strings.Split(text, "\f"), nil, nil
}
