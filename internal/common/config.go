package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/caja-extractor/constants"
)

// Config holds all application configuration
type Config struct {
	PDF    PDFConfig
	Server ServerConfig
	Export ExportConfig
	Log    LogConfig
}

// PDFConfig holds PDF text extraction configuration
type PDFConfig struct {
	Backend      string
	PdftotextBin string
	Timeout      time.Duration
	MaxPages     int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr         string
	MaxUploadMB      int
	CORSAllowOrigins []string
	ShutdownTimeout  time.Duration
}

// ExportConfig holds export configuration
type ExportConfig struct {
	Format string
	Dir    string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first; variables already set win.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		PDF: PDFConfig{
			Backend:      getEnv("PDF_BACKEND", constants.BackendNative),
			PdftotextBin: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Timeout:      getEnvAsDuration("PDF_TIMEOUT", 30*time.Second),
			MaxPages:     getEnvAsInt("PDF_MAX_PAGES", 0),
		},
		Server: ServerConfig{
			HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
			MaxUploadMB:      getEnvAsInt("MAX_UPLOAD_MB", 32),
			CORSAllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", nil),
			ShutdownTimeout:  getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Export: ExportConfig{
			Format: getEnv("EXPORT_FORMAT", string(constants.ExportCSV)),
			Dir:    getEnv("EXPORT_DIR", "."),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.PDF.Backend {
	case constants.BackendNative, constants.BackendPdftotext:
	default:
		return NewAppError("CONFIG_ERROR", fmt.Sprintf("PDF_BACKEND must be %q or %q", constants.BackendNative, constants.BackendPdftotext), ErrInvalidInput)
	}
	if _, ok := constants.ParseExportFormat(c.Export.Format); !ok {
		return NewAppError("CONFIG_ERROR", "EXPORT_FORMAT must be csv, xlsx or json", ErrInvalidInput)
	}
	if c.Server.MaxUploadMB <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_UPLOAD_MB must be positive", ErrInvalidInput)
	}
	if c.PDF.MaxPages < 0 {
		return NewAppError("CONFIG_ERROR", "PDF_MAX_PAGES must not be negative", ErrInvalidInput)
	}
	return nil
}
