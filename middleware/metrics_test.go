package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shreeflow/shreeflow-backend-go/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordsMappedErrorStatus(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Use(Metrics)
	e.GET("/things/:id", func(c echo.Context) error {
		return apperrors.ErrNotFound
	})

	before := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/things/:id", "404"))

	req := httptest.NewRequest(http.MethodGet, "/things/42", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	after := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/things/:id", "404"))
	assert.Equal(t, before+1, after)
}

func TestMetricsRecordsSuccessStatus(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Use(Metrics)
	e.GET("/ok", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	before := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/ok", "200"))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	after := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/ok", "200"))
	assert.Equal(t, before+1, after)
}

func TestMetricsErrorResponseWrittenOnce(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Use(Metrics)
	e.GET("/fail", func(c echo.Context) error {
		return apperrors.ErrNoRatesConfigured
	})

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	// Committing through the middleware must not produce a second body from
	// echo's own error dispatch.
	assert.Equal(t, 1, countJSONObjects(rec.Body.String()))
}

func countJSONObjects(body string) int {
	depth, objects := 0, 0
	for _, r := range body {
		switch r {
		case '{':
			if depth == 0 {
				objects++
			}
			depth++
		case '}':
			depth--
		}
	}
	return objects
}
