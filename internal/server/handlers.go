package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/caja-extractor/constants"
	"github.com/joseph-ayodele/caja-extractor/internal/common"
	"github.com/joseph-ayodele/caja-extractor/internal/entity"
	"github.com/joseph-ayodele/caja-extractor/internal/export"
	"github.com/joseph-ayodele/caja-extractor/internal/ingest"
	"github.com/joseph-ayodele/caja-extractor/internal/pipeline"
)

const (
	formFieldFiles    = "files"
	headerFailedFiles = "X-Failed-Files"
	headerRequestID   = "X-Request-ID"
)

var badRequest = gin.H{
	"error": "bad request",
}

type extractResponse struct {
	RunID         string             `json:"run_id"`
	Outcome       constants.Outcome  `json:"outcome"`
	Submitted     int                `json:"submitted"`
	Processed     int                `json:"processed"`
	Records       []entity.Record    `json:"records"`
	Failures      []entity.Failure   `json:"failures"`
	Warnings      []pipeline.Warning `json:"warnings"`
	Totals        entity.Totals      `json:"totals"`
	TotalsDisplay map[string]string  `json:"totals_display"`
}

func newExtractResponse(res *pipeline.BatchResult) extractResponse {
	return extractResponse{
		RunID:     res.RunID,
		Outcome:   res.Outcome(),
		Submitted: res.Submitted,
		Processed: len(res.Records),
		Records:   res.Records,
		Failures:  res.Failures,
		Warnings:  res.Warnings,
		Totals:    res.Totals,
		TotalsDisplay: map[string]string{
			"gross_sales":    export.FormatCurrency(res.Totals.GrossSales),
			"cash_amount":    export.FormatCurrency(res.Totals.CashAmount),
			"card_amount":    export.FormatCurrency(res.Totals.CardAmount),
			"total_expenses": export.FormatCurrency(res.Totals.TotalExpenses),
		},
	}
}

func (s *Server) handleExtract(c *gin.Context) {
	res, ok := s.runUpload(c)
	if !ok {
		return
	}
	if res.Err() != nil {
		s.nothingProcessed(c, res)
		return
	}
	c.JSON(http.StatusOK, newExtractResponse(res))
}

func (s *Server) handleExport(c *gin.Context) {
	format, ok := constants.ParseExportFormat(c.Query("format"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv, xlsx or json"})
		return
	}

	res, ok := s.runUpload(c)
	if !ok {
		return
	}
	if res.Err() != nil {
		s.nothingProcessed(c, res)
		return
	}

	art, err := s.exporter.Export(c.Request.Context(), format, export.Batch{
		RunID:    res.RunID,
		Records:  res.Records,
		Failures: res.Failures,
		Totals:   res.Totals,
	})
	if err != nil {
		common.LoggerFromContext(c.Request.Context(), s.logger).Error("export.failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	if names := res.FailedNames(); len(names) > 0 {
		c.Header(headerFailedFiles, strings.Join(names, ", "))
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Name))
	c.Data(http.StatusOK, art.ContentType, art.Data)
}

func (s *Server) nothingProcessed(c *gin.Context, res *pipeline.BatchResult) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":    common.ErrNothingProcessed.Error(),
		"run_id":   res.RunID,
		"outcome":  res.Outcome(),
		"failures": res.Failures,
	})
}

// runUpload stages the uploaded files in a temporary directory and runs the
// batch over them. It writes the error response itself and returns false
// when the request cannot be processed at all.
func (s *Server) runUpload(c *gin.Context) (*pipeline.BatchResult, bool) {
	ctx := c.Request.Context()
	logger := common.LoggerFromContext(ctx, s.logger)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(s.cfg.MaxUploadMB)<<20)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, badRequest)
		return nil, false
	}
	files := form.File[formFieldFiles]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return nil, false
	}

	dir, err := os.MkdirTemp("", "caja-upload-*")
	if err != nil {
		logger.Error("upload.tempdir.failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return nil, false
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn("upload.cleanup.failed", "dir", dir, "error", err)
		}
	}()

	docs := make([]ingest.Document, 0, len(files))
	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			docs = append(docs, ingest.Document{Name: fh.Filename, Err: err})
			continue
		}
		doc, err := ingest.Stage(dir, i, fh.Filename, f)
		_ = f.Close()
		if err != nil {
			doc = ingest.Document{Name: fh.Filename, Err: err}
		}
		docs = append(docs, doc)
	}

	res, err := s.processor.Run(ctx, docs)
	if err != nil {
		logger.Warn("upload.batch.interrupted", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request cancelled"})
		return nil, false
	}
	return res, true
}
