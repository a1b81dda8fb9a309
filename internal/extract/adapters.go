package extract

import (
	"context"

	"github.com/joseph-ayodele/caja-extractor/internal/entity"
	"github.com/joseph-ayodele/caja-extractor/internal/fields"
	"github.com/joseph-ayodele/caja-extractor/internal/pdftext"
)

type PDFAdapter struct {
	e *pdftext.Extractor
}

func NewPDFAdapter(e *pdftext.Extractor) *PDFAdapter {
	return &PDFAdapter{e: e}
}

func (a *PDFAdapter) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	r, err := a.e.Extract(ctx, path)
	return TextExtractionResult{
		Text:       r.Text,
		Pages:      r.Pages,
		Method:     r.Method,
		Duration:   r.Duration,
		Warnings:   r.Warnings,
		Unreadable: r.Unreadable,
	}, err
}

type RulesAdapter struct {
	e *fields.Extractor
}

func NewRulesAdapter(e *fields.Extractor) *RulesAdapter {
	return &RulesAdapter{e: e}
}

func (a *RulesAdapter) ExtractFields(_ context.Context, text string) (entity.Record, error) {
	return a.e.Extract(text)
}
