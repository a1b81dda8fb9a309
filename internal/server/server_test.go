package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/caja-extractor/internal/common"
	"github.com/joseph-ayodele/caja-extractor/internal/export"
	"github.com/joseph-ayodele/caja-extractor/internal/extract"
	"github.com/joseph-ayodele/caja-extractor/internal/fields"
	"github.com/joseph-ayodele/caja-extractor/internal/pipeline"
)

// fileText treats the staged upload itself as the extracted text. Uploads
// starting with "%BROKEN" fail.
type fileText struct{}

func (fileText) Extract(_ context.Context, path string) (extract.TextExtractionResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return extract.TextExtractionResult{}, err
	}
	if bytes.HasPrefix(b, []byte("%BROKEN")) {
		return extract.TextExtractionResult{}, assert.AnError
	}
	return extract.TextExtractionResult{Text: string(b), Pages: 1, Method: "pdf-native"}, nil
}

const goodReport = "DATOS DE FACTURAS\nV. Bruta : $1,500\nTotal : $1,400\nMedio : EFECTIVO\nVal. Ventas : $1,400\nDiferencia: $0"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	proc := pipeline.NewProcessor(nil, fileText{}, extract.NewRulesAdapter(fields.NewExtractor(nil)))
	cfg := common.ServerConfig{MaxUploadMB: 1}
	return New(cfg, proc, export.NewService(nil), nil)
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(formFieldFiles, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func do(t *testing.T, s *Server, target string, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartBody(t, files)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(headerRequestID))
}

func TestExtract(t *testing.T) {
	s := newTestServer(t)

	t.Run("mixed batch", func(t *testing.T) {
		w := do(t, s, "/api/v1/extract", map[string]string{
			"lunes.pdf": goodReport,
			"roto.pdf":  "%BROKEN",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp extractResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Submitted)
		assert.Equal(t, 1, resp.Processed)
		require.Len(t, resp.Records, 1)
		assert.Equal(t, "lunes.pdf", resp.Records[0].SourceName)
		assert.Equal(t, int64(1500), resp.Records[0].GrossSales)
		require.Len(t, resp.Failures, 1)
		assert.Equal(t, "roto.pdf", resp.Failures[0].SourceName)
		assert.Equal(t, "PARTIAL", string(resp.Outcome))
		assert.Equal(t, "$1,500", resp.TotalsDisplay["gross_sales"])
	})

	t.Run("nothing processed", func(t *testing.T) {
		w := do(t, s, "/api/v1/extract", map[string]string{"roto.pdf": "%BROKEN"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "roto.pdf")
	})

	t.Run("no files", func(t *testing.T) {
		w := do(t, s, "/api/v1/extract", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExport(t *testing.T) {
	s := newTestServer(t)

	t.Run("csv attachment", func(t *testing.T) {
		w := do(t, s, "/api/v1/export?format=csv", map[string]string{
			"lunes.pdf": goodReport,
			"roto.pdf":  "%BROKEN",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "datos_caja_")
		assert.Equal(t, "roto.pdf", w.Header().Get(headerFailedFiles))

		recs, err := export.ReadCSV(w.Body)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "lunes.pdf", recs[0].SourceName)
	})

	t.Run("default format is csv", func(t *testing.T) {
		w := do(t, s, "/api/v1/export", map[string]string{"lunes.pdf": goodReport})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
		assert.Empty(t, w.Header().Get(headerFailedFiles))
	})

	t.Run("json", func(t *testing.T) {
		w := do(t, s, "/api/v1/export?format=json", map[string]string{"lunes.pdf": goodReport})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var rep export.Report
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
		assert.Len(t, rep.Records, 1)
	})

	t.Run("bad format", func(t *testing.T) {
		w := do(t, s, "/api/v1/export?format=ods", map[string]string{"lunes.pdf": goodReport})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("nothing processed", func(t *testing.T) {
		w := do(t, s, "/api/v1/export?format=xlsx", map[string]string{"roto.pdf": "%BROKEN"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
