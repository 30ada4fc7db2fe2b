package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCalculation(t *testing.T) {
	m := New("blackscholes")

	m.RecordCalculation(false)
	m.RecordCalculation(true)
	m.RecordCalculation(false)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.CalculationsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NonFinitePricesTotal))
}

func TestRecordHTTPRequest(t *testing.T) {
	m := New("blackscholes")

	m.RecordHTTPRequest("POST", "/calculate", 200, 5*time.Millisecond)
	m.RecordHTTPRequest("POST", "/calculate", 400, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/calculate", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/calculate", "400")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New("blackscholes")
	m.RecordCalculation(false)
	m.RecordDBQuery("save", 2*time.Millisecond)

	srv := m.NewServer(9090, "")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "blackscholes_calculations_total 1")
	assert.Contains(t, body, `blackscholes_db_query_duration_seconds_count{operation="save"} 1`)
	assert.Equal(t, ":9090", srv.Addr)
}

func TestNewIsIndependent(t *testing.T) {
	// 多次创建不会因为重复注册而 panic
	assert.NotPanics(t, func() {
		New("blackscholes")
		New("blackscholes")
	})
}
