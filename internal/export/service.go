package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/caja-extractor/constants"
	"github.com/joseph-ayodele/caja-extractor/internal/common"
	"github.com/joseph-ayodele/caja-extractor/internal/entity"
)

// Batch is what the exporter needs from a finished batch run.
type Batch struct {
	RunID    string
	Records  []entity.Record
	Failures []entity.Failure
	Totals   entity.Totals
}

// Artifact is an export ready to be written to disk or served.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Service is a tiny façade that renders a batch into a downloadable file.
type Service struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, now: time.Now}
}

// Export renders b in the requested format. Only successful records become
// rows; a batch without records is refused with common.ErrNothingProcessed.
func (s *Service) Export(ctx context.Context, format constants.ExportFormat, b Batch) (Artifact, error) {
	start := time.Now()
	if len(b.Records) == 0 {
		return Artifact{}, common.ErrNothingProcessed
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case constants.ExportCSV:
		err = WriteCSV(&buf, b.Records)
	case constants.ExportXLSX:
		err = WriteXLSX(&buf, b.Records, b.Totals)
	case constants.ExportJSON:
		err = WriteJSON(&buf, Report{
			RunID:       b.RunID,
			GeneratedAt: s.now().UTC(),
			Records:     b.Records,
			Totals:      b.Totals,
			Failures:    b.Failures,
		})
	default:
		return Artifact{}, fmt.Errorf("%w: export format %q", common.ErrUnsupportedFormat, format)
	}
	if err != nil {
		s.logger.Error("export.failed", "format", format, "run_id", b.RunID, "error", err)
		return Artifact{}, err
	}

	art := Artifact{
		Name:        FileName(format, s.now()),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}
	s.logger.Info("export.ok",
		"request_id", common.RequestIDFromContext(ctx),
		"format", format,
		"rows", len(b.Records),
		"bytes", len(art.Data),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return art, nil
}
