package pipeline

import (
	"log/slog"

	"github.com/joseph-ayodele/caja-extractor/internal/common"
	"github.com/joseph-ayodele/caja-extractor/internal/extract"
	"github.com/joseph-ayodele/caja-extractor/internal/fields"
	"github.com/joseph-ayodele/caja-extractor/internal/pdftext"
)

// NewFromConfig wires the PDF text backend selected in cfg and the rule-based
// field extractor into a Processor.
func NewFromConfig(cfg common.PDFConfig, logger *slog.Logger) *Processor {
	text := pdftext.NewExtractor(pdftext.Config{
		Backend:   cfg.Backend,
		Pdftotext: cfg.PdftotextBin,
		Timeout:   cfg.Timeout,
		MaxPages:  cfg.MaxPages,
	}, logger)
	return NewProcessor(logger,
		extract.NewPDFAdapter(text),
		extract.NewRulesAdapter(fields.NewExtractor(logger)),
	)
}
