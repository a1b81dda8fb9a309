// Package pdftext turns PDF documents into plain text, page by page.
package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/caja-extractor/constants"
	"github.com/joseph-ayodele/caja-extractor/internal/common"
)

type Config struct {
	Backend   string        // constants.BackendNative (default) | constants.BackendPdftotext
	Pdftotext string        // binary name or absolute path; if empty -> "pdftotext"
	Timeout   time.Duration // per document, pdftotext backend only; 0 = none
	MaxPages  int           // 0 = no limit
}

type ExtractionResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-native" | "pdf-text"
	Duration time.Duration
	Warnings []string
	// Unreadable lists 1-based page numbers whose text could not be read.
	Unreadable []int
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Backend == "" {
		cfg.Backend = constants.BackendNative
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// WithRunner swaps the command runner used by the pdftotext backend.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract reads every page of the PDF at path and returns the page texts
// joined by newlines.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	if constants.MapExtToFormat(ext) != constants.PDF {
		return ExtractionResult{}, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}
	e.logger.Debug("starting pdf text extraction", "path", path, "backend", e.cfg.Backend)

	var (
		pages      []string
		warnings   []string
		unreadable []int
		method     string
		err        error
	)
	switch e.cfg.Backend {
	case constants.BackendNative:
		method = "pdf-native"
		pages, warnings, unreadable, err = e.extractNative(path)
	case constants.BackendPdftotext:
		method = "pdf-text"
		pages, warnings, err = e.extractPdftotext(ctx, path)
	default:
		return ExtractionResult{}, fmt.Errorf("unknown pdf backend: %q", e.cfg.Backend)
	}
	res := ExtractionResult{Method: method, Warnings: warnings, Unreadable: unreadable}
	if err != nil {
		res.Duration = time.Since(start)
		return res, err
	}

	if e.cfg.MaxPages > 0 && len(pages) > e.cfg.MaxPages {
		for i := e.cfg.MaxPages; i < len(pages); i++ {
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: skipped, page limit is %d", i+1, e.cfg.MaxPages))
		}
		pages = pages[:e.cfg.MaxPages]
	}
	for i := range pages {
		pages[i] = Normalize(pages[i])
	}
	res.Pages = len(pages)
	res.Text = strings.Join(pages, "\n")
	res.Duration = time.Since(start)

	if strings.TrimSpace(res.Text) == "" {
		return res, common.ErrEmptyText
	}
	return res, nil
}
