// Package server exposes the batch extractor over HTTP: upload PDFs, get the
// extracted table back as JSON or as a downloadable export.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/caja-extractor/internal/common"
	"github.com/joseph-ayodele/caja-extractor/internal/export"
	"github.com/joseph-ayodele/caja-extractor/internal/pipeline"
)

type Server struct {
	e         *gin.Engine
	cfg       common.ServerConfig
	processor *pipeline.Processor
	exporter  *export.Service
	logger    *slog.Logger
}

func New(cfg common.ServerConfig, processor *pipeline.Processor, exporter *export.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		e:         gin.New(),
		cfg:       cfg,
		processor: processor,
		exporter:  exporter,
		logger:    logger,
	}
	s.initRoutes()
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) initRoutes() {
	s.e.Use(gin.Recovery())
	s.e.Use(s.requestLogger())
	s.e.Use(cors.New(s.corsConfig()))

	s.e.GET("/healthz", s.handleHealth)

	g := s.e.Group("/api/v1")
	g.POST("/extract", s.handleExtract)
	g.POST("/export", s.handleExport)
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if len(s.cfg.CORSAllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.cfg.CORSAllowOrigins
	}
	cfg.ExposeHeaders = []string{"Content-Disposition", headerFailedFiles, headerRequestID}
	return cfg
}

// requestLogger tags each request with an id and logs it through slog.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		logger := s.logger.With("request_id", requestID)
		ctx := common.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(common.WithLogger(ctx, logger))
		c.Header(headerRequestID, requestID)

		c.Next()

		logger.Info("http.request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
