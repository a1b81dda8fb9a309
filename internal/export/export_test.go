package export

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/caja-extractor/constants"
	"github.com/joseph-ayodele/caja-extractor/internal/common"
	"github.com/joseph-ayodele/caja-extractor/internal/entity"
)

var sampleRecords = []entity.Record{
	{
		SourceName:    "cierre 14-03.pdf",
		OpeningTime:   "03/14/2025 06:58:12 AM",
		ClosingTime:   "03/14/2025 10:31:45 PM",
		GrossSales:    2345600,
		Total:         2300100,
		CashAmount:    1500000,
		CardAmount:    800100,
		TotalExpenses: 65000,
		Difference:    1250,
	},
	{SourceName: "vacio, sin datos.pdf"},
}

func fixedService() *Service {
	s := NewService(nil)
	s.now = func() time.Time { return time.Date(2025, 3, 15, 9, 4, 5, 0, time.UTC) }
	return s
}

func TestCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords))

	header, _, _ := strings.Cut(buf.String(), "\n")
	assert.Equal(t, strings.Join(Columns, ","), header)

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords, got)
}

func TestCSV_EmptyKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(Columns, ",")+"\n", buf.String())
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	totals := entity.SumRecords(sampleRecords)
	require.NoError(t, WriteXLSX(&buf, sampleRecords, totals))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(dataSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{"cierre 14-03.pdf", "03/14/2025 06:58:12 AM", "03/14/2025 10:31:45 PM",
		"2345600", "2300100", "1500000", "800100", "65000", "1250"}, rows[1])

	gross, err := f.GetCellValue(summarySheet, "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "2345600", gross)
}

func TestJSON(t *testing.T) {
	t.Run("valid report", func(t *testing.T) {
		var buf bytes.Buffer
		rep := Report{
			RunID:       "run-1",
			GeneratedAt: time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
			Records:     sampleRecords,
			Totals:      entity.SumRecords(sampleRecords),
			Failures:    []entity.Failure{{SourceName: "roto.pdf", Reason: "open pdf: not a PDF file"}},
		}
		require.NoError(t, WriteJSON(&buf, rep))

		var back Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
		assert.Equal(t, rep.Records, back.Records)
		assert.Equal(t, rep.Totals, back.Totals)
		assert.Equal(t, rep.Failures, back.Failures)
	})

	t.Run("nil slices are written as empty arrays", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, Report{GeneratedAt: time.Now()}))
		assert.Contains(t, buf.String(), `"records": []`)
		assert.Contains(t, buf.String(), `"failures": []`)
	})

	t.Run("schema rejects negative amounts", func(t *testing.T) {
		bad := Report{GeneratedAt: time.Now(), Records: []entity.Record{{SourceName: "x.pdf", Difference: -1}}}
		err := WriteJSON(&bytes.Buffer{}, bad)
		assert.ErrorContains(t, err, "json does not match schema")
	})

	t.Run("schema rejects malformed timestamps", func(t *testing.T) {
		bad := Report{GeneratedAt: time.Now(), Records: []entity.Record{{SourceName: "x.pdf", OpeningTime: "ayer"}}}
		assert.Error(t, WriteJSON(&bytes.Buffer{}, bad))
	})
}

func TestService_Export(t *testing.T) {
	s := fixedService()
	b := Batch{RunID: "run-1", Records: sampleRecords, Totals: entity.SumRecords(sampleRecords)}

	tests := []struct {
		format      constants.ExportFormat
		name        string
		contentType string
	}{
		{constants.ExportCSV, "datos_caja_20250315_090405.csv", "text/csv; charset=utf-8"},
		{constants.ExportXLSX, "datos_caja_20250315_090405.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{constants.ExportJSON, "datos_caja_20250315_090405.json", "application/json"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			art, err := s.Export(context.Background(), tt.format, b)
			require.NoError(t, err)
			assert.Equal(t, tt.name, art.Name)
			assert.Equal(t, tt.contentType, art.ContentType)
			assert.NotEmpty(t, art.Data)
		})
	}

	t.Run("empty batch", func(t *testing.T) {
		_, err := s.Export(context.Background(), constants.ExportCSV, Batch{})
		assert.ErrorIs(t, err, common.ErrNothingProcessed)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := s.Export(context.Background(), "ods", b)
		assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
	})
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$0", FormatCurrency(0))
	assert.Equal(t, "$999", FormatCurrency(999))
	assert.Equal(t, "$1,234", FormatCurrency(1234))
	assert.Equal(t, "$2,345,600", FormatCurrency(2345600))
}

func TestWritePreview(t *testing.T) {
	var buf bytes.Buffer
	WritePreview(&buf, sampleRecords, entity.SumRecords(sampleRecords))

	out := buf.String()
	assert.Contains(t, out, "V_Bruta")
	assert.Contains(t, out, "cierre 14-03.pdf")
	assert.Contains(t, out, "$2,345,600")
	assert.Contains(t, out, "$1,250")
}
