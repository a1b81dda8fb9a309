package pipeline

import (
	"github.com/joseph-ayodele/caja-extractor/constants"
	"github.com/joseph-ayodele/caja-extractor/internal/common"
	"github.com/joseph-ayodele/caja-extractor/internal/entity"
)

// Warning flags a document that produced a record but not cleanly: a field
// could not be converted, or the text backend reported a problem.
type Warning struct {
	SourceName string `json:"source_name"`
	Message    string `json:"message"`
}

// BatchResult is what one batch run produced. Records keep input order.
type BatchResult struct {
	RunID     string           `json:"run_id"`
	Submitted int              `json:"submitted"`
	Records   []entity.Record  `json:"records"`
	Failures  []entity.Failure `json:"failures"`
	Warnings  []Warning        `json:"warnings"`
	Totals    entity.Totals    `json:"totals"`
}

// FailedNames lists the identifiers of documents that failed entirely.
func (b *BatchResult) FailedNames() []string {
	names := make([]string, 0, len(b.Failures))
	for _, f := range b.Failures {
		names = append(names, f.SourceName)
	}
	return names
}

func (b *BatchResult) Outcome() constants.Outcome {
	switch {
	case len(b.Records) == 0:
		return constants.OutcomeEmpty
	case len(b.Failures) > 0:
		return constants.OutcomePartial
	default:
		return constants.OutcomeOK
	}
}

// Err returns common.ErrNothingProcessed when no document produced a record.
func (b *BatchResult) Err() error {
	if len(b.Records) == 0 {
		return common.NewAppError("EMPTY_BATCH", "no document produced a record", common.ErrNothingProcessed)
	}
	return nil
}
