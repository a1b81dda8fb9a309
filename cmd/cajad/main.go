package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/caja-extractor/internal/common"
	"github.com/joseph-ayodele/caja-extractor/internal/export"
	"github.com/joseph-ayodele/caja-extractor/internal/pipeline"
	"github.com/joseph-ayodele/caja-extractor/internal/server"
)

func main() {
	cfg := common.LoadConfig()
	logger := common.NewLogger(os.Stdout, cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(cfg.Server, pipeline.NewFromConfig(cfg.PDF, logger), export.NewService(logger), logger)

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr, "pdf_backend", cfg.PDF.Backend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
