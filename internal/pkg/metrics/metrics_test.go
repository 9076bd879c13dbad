package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveIngest(t *testing.T) {
	m := NewMetrics()
	m.ObserveIngest("success", 2, 1, 1, 10*time.Millisecond)
	m.ObserveIngest("success", 0, 3, 0, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ingestCalls.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ingestRecords.WithLabelValues("saved")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.ingestRecords.WithLabelValues("skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ingestRecords.WithLabelValues("error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveIngest("success", 1, 0, 0, time.Millisecond)
		m.ObserveJob("promotion_fetch", "success")
	})
}

func TestGinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/api/ping", "200")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kol_http_requests_total")
}
