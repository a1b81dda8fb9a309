package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/caja-extractor/internal/entity"
	"github.com/joseph-ayodele/caja-extractor/internal/pipeline"
)

func TestPrintSummary(t *testing.T) {
	res := &pipeline.BatchResult{
		Submitted: 3,
		Records:   []entity.Record{{SourceName: "a.pdf"}, {SourceName: "b.pdf"}},
		Failures:  []entity.Failure{{SourceName: "c.pdf", Reason: "open pdf: not a PDF file"}},
		Totals: entity.Totals{
			GrossSales:    2345600,
			CashAmount:    1500000,
			CardAmount:    800100,
			TotalExpenses: 65000,
		},
	}

	var buf bytes.Buffer
	printSummary(&buf, res, "out/datos_caja_20250315_090405.csv")

	out := buf.String()
	assert.Contains(t, out, "- Files submitted: 3\n")
	assert.Contains(t, out, "- Files processed: 2\n")
	assert.Contains(t, out, "- Failures: 1\n")
	assert.Contains(t, out, "- Total ventas brutas: $2,345,600\n")
	assert.Contains(t, out, "- Total efectivo: $1,500,000\n")
	assert.Contains(t, out, "- Total datafono: $800,100\n")
	assert.Contains(t, out, "- Total egresos: $65,000\n")
	assert.Contains(t, out, "- Output: out/datos_caja_20250315_090405.csv\n")
}
