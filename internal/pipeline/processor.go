// Package pipeline runs the per-document text and field extraction stages
// over a batch of documents.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/caja-extractor/internal/common"
	"github.com/joseph-ayodele/caja-extractor/internal/entity"
	"github.com/joseph-ayodele/caja-extractor/internal/extract"
	"github.com/joseph-ayodele/caja-extractor/internal/ingest"
)

// ProgressFunc is called after each document with the count done so far.
type ProgressFunc func(done, total int, name string)

// Processor coordinates text extraction then field extraction, one document
// at a time.
type Processor struct {
	logger   *slog.Logger
	text     extract.TextExtractor
	fields   extract.FieldExtractor
	progress ProgressFunc
}

func NewProcessor(logger *slog.Logger, text extract.TextExtractor, fields extract.FieldExtractor) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, text: text, fields: fields}
}

// OnProgress registers fn to be called after every document.
func (p *Processor) OnProgress(fn ProgressFunc) *Processor {
	p.progress = fn
	return p
}

// Run processes docs sequentially. Per-document failures never abort the
// batch; they are collected in BatchResult.Failures. The returned error is
// only set when ctx is done before the batch completes, in which case the
// result holds what was gathered so far.
func (p *Processor) Run(ctx context.Context, docs []ingest.Document) (*BatchResult, error) {
	runID := common.RequestIDFromContext(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = common.WithRequestID(ctx, runID)
	}
	start := time.Now()

	res := &BatchResult{
		RunID:     runID,
		Submitted: len(docs),
		Records:   make([]entity.Record, 0, len(docs)),
		Failures:  make([]entity.Failure, 0),
		Warnings:  make([]Warning, 0),
	}
	log := p.logger.With("run_id", runID)
	log.Info("batch.start", "documents", len(docs))

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			log.Warn("batch.cancelled", "done", i, "documents", len(docs), "error", err)
			res.Totals = entity.SumRecords(res.Records)
			return res, err
		}

		rec, warnings, err := p.processDocument(ctx, doc)
		switch {
		case err != nil:
			log.Error("batch.document.failed", "document", doc.Name, "error", err)
			res.Failures = append(res.Failures, entity.Failure{SourceName: doc.Name, Reason: err.Error()})
		default:
			if len(warnings) > 0 {
				log.Warn("batch.document.partial", "document", doc.Name, "warnings", warnings)
				for _, w := range warnings {
					res.Warnings = append(res.Warnings, Warning{SourceName: doc.Name, Message: w})
				}
			} else {
				log.Info("batch.document.ok", "document", doc.Name)
			}
			res.Records = append(res.Records, rec)
		}

		if p.progress != nil {
			p.progress(i+1, len(docs), doc.Name)
		}
	}

	res.Totals = entity.SumRecords(res.Records)
	log.Info("batch.done",
		"documents", len(docs),
		"records", len(res.Records),
		"failures", len(res.Failures),
		"warnings", len(res.Warnings),
		"outcome", res.Outcome(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// processDocument returns the record with its non-fatal warnings (text
// backend notes, field conversion errors), or a fatal error. A page that
// could not be read fails the whole document. Panics raised while reading
// the document are turned into a fatal error so the batch keeps going.
func (p *Processor) processDocument(ctx context.Context, doc ingest.Document) (rec entity.Record, warnings []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, warnings = entity.Record{}, nil
			err = fmt.Errorf("%w: panic while processing: %v", common.ErrInternal, r)
		}
	}()

	if doc.Err != nil {
		return entity.Record{}, nil, doc.Err
	}

	txt, err := p.text.Extract(ctx, doc.Path)
	if err != nil {
		return entity.Record{}, nil, common.WrapError(err, "extract text")
	}
	if len(txt.Unreadable) > 0 {
		err = fmt.Errorf("%w: %v (%s)", common.ErrUnreadablePages, txt.Unreadable, strings.Join(txt.Warnings, "; "))
		return entity.Record{}, nil, common.WrapError(err, "extract text")
	}
	p.logger.Debug("batch.document.text",
		"document", doc.Name,
		"method", txt.Method,
		"pages", txt.Pages,
		"bytes", len(txt.Text),
		"duration_ms", txt.Duration.Milliseconds(),
	)
	if txt.Text == "" {
		return entity.Record{}, nil, common.ErrEmptyText
	}

	warnings = append(warnings, txt.Warnings...)
	rec, ferr := p.fields.ExtractFields(ctx, txt.Text)
	if ferr != nil {
		warnings = append(warnings, ferr.Error())
	}
	rec.SourceName = doc.Name
	return rec, warnings, nil
}
