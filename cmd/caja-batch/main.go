package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/caja-extractor/constants"
	"github.com/joseph-ayodele/caja-extractor/internal/common"
	"github.com/joseph-ayodele/caja-extractor/internal/export"
	"github.com/joseph-ayodele/caja-extractor/internal/ingest"
	"github.com/joseph-ayodele/caja-extractor/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	cfg := common.LoadConfig()

	var (
		dir     = flag.String("dir", "", "directory to process cash reports from")
		out     = flag.String("out", "", "output file path (optional, defaults to EXPORT_DIR/datos_caja_<timestamp>.<format>)")
		format  = flag.String("format", cfg.Export.Format, "export format: csv, xlsx or json")
		backend = flag.String("backend", cfg.PDF.Backend, "PDF text backend: native or pdftotext")
		quiet   = flag.Bool("quiet", false, "do not print the preview table")
	)
	flag.Parse()

	paths := flag.Args()
	if *dir != "" {
		paths = append([]string{*dir}, paths...)
	}
	if len(paths) == 0 {
		printError("Error: --dir or at least one PDF file is required\n")
		os.Exit(2)
	}

	cfg.PDF.Backend = *backend
	cfg.Export.Format = *format
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(2)
	}
	exportFormat, _ := constants.ParseExportFormat(cfg.Export.Format)

	// Logs go to stderr; stdout carries the preview.
	logger := common.NewLogger(os.Stderr, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	docs, stats, err := ingest.Collect(paths, true)
	if err != nil {
		logger.Error("failed to collect documents", "error", err)
		os.Exit(1)
	}
	logger.Info("collection complete",
		"documents", len(docs),
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"skipped", stats.Skipped,
		"failed", stats.Failed)

	processor := pipeline.NewFromConfig(cfg.PDF, logger).
		OnProgress(func(done, total int, name string) {
			logger.Info("progress", "done", done, "total", total, "document", name)
		})

	res, err := processor.Run(ctx, docs)
	if err != nil {
		logger.Error("batch interrupted", "error", err)
		os.Exit(1)
	}

	if !*quiet && len(res.Records) > 0 {
		export.WritePreview(os.Stdout, res.Records, res.Totals)
	}
	if names := res.FailedNames(); len(names) > 0 {
		fmt.Printf("Failed files (%d): %s\n", len(names), strings.Join(names, ", "))
	}

	if err := res.Err(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	exporter := export.NewService(logger)
	art, err := exporter.Export(ctx, exportFormat, export.Batch{
		RunID:    res.RunID,
		Records:  res.Records,
		Failures: res.Failures,
		Totals:   res.Totals,
	})
	if err != nil {
		logger.Error("failed to export", "error", err)
		os.Exit(1)
	}

	if *out == "" {
		*out = filepath.Join(cfg.Export.Dir, art.Name)
	}
	if err := os.WriteFile(*out, art.Data, 0o644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	logger.Info("batch processing complete",
		"run_id", res.RunID,
		"outcome", res.Outcome(),
		"processed", len(res.Records),
		"failures", len(res.Failures),
		"output_file", *out)

	printSummary(os.Stdout, res, *out)
}

// printSummary writes the closing report, including the four batch totals
// shown even when the preview table is suppressed.
func printSummary(w io.Writer, res *pipeline.BatchResult, out string) {
	fmt.Fprintf(w, "Batch processing complete!\n")
	fmt.Fprintf(w, "- Files submitted: %d\n", res.Submitted)
	fmt.Fprintf(w, "- Files processed: %d\n", len(res.Records))
	fmt.Fprintf(w, "- Failures: %d\n", len(res.Failures))
	fmt.Fprintf(w, "- Total ventas brutas: %s\n", export.FormatCurrency(res.Totals.GrossSales))
	fmt.Fprintf(w, "- Total efectivo: %s\n", export.FormatCurrency(res.Totals.CashAmount))
	fmt.Fprintf(w, "- Total datafono: %s\n", export.FormatCurrency(res.Totals.CardAmount))
	fmt.Fprintf(w, "- Total egresos: %s\n", export.FormatCurrency(res.Totals.TotalExpenses))
	fmt.Fprintf(w, "- Output: %s\n", out)
}
