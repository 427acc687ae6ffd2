package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollector_RecordTransaction(t *testing.T) {
	collector := NewMetricsCollector(nil)

	collector.RecordTransaction("DEPOSIT", 1000)
	collector.RecordTransaction("DEPOSIT", 50)
	collector.RecordTransaction("TRANSFER", 600)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.transactionsRecorded.WithLabelValues("DEPOSIT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.transactionsRecorded.WithLabelValues("TRANSFER")))
	assert.Equal(t, 2, testutil.CollectAndCount(collector.transactionAmount))
}

func TestMetricsCollector_UpdateAccountBalance(t *testing.T) {
	collector := NewMetricsCollector(nil)

	collector.UpdateAccountBalance(1, 400)
	collector.UpdateAccountBalance(1, 250)
	collector.UpdateAccountBalance(2, 600)

	assert.Equal(t, 250.0, testutil.ToFloat64(collector.accountBalance.WithLabelValues("1")))
	assert.Equal(t, 600.0, testutil.ToFloat64(collector.accountBalance.WithLabelValues("2")))
}

func TestMetricsCollector_Handler(t *testing.T) {
	collector := NewMetricsCollector(nil)
	collector.RecordEvent("ACCOUNT_CREATED")
	collector.ObserveRequest(http.MethodGet, "/health", http.StatusOK, 5*time.Millisecond)

	recorder := httptest.NewRecorder()
	collector.GetHandler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.True(t, strings.Contains(body, `ledger_events_total{type="ACCOUNT_CREATED"} 1`), body)
	assert.Contains(t, body, "http_request_duration_seconds")
}
