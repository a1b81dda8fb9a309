package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/caja-extractor/internal/entity"
)

// TextExtractor is Stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	Method     string // "pdf-native" | "pdf-text"
	Duration   time.Duration
	Warnings   []string
	Unreadable []int // 1-based pages the backend could not read
}

// FieldExtractor is Stage 2: text -> record fields.
// A non-nil error may come with a partially filled record.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (entity.Record, error)
}
