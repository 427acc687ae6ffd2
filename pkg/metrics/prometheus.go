package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsCollector struct {
	registry             *prometheus.Registry
	eventsTotal          *prometheus.CounterVec
	transactionsRecorded *prometheus.CounterVec
	transactionAmount    *prometheus.HistogramVec
	accountBalance       *prometheus.GaugeVec
	requestDuration      *prometheus.HistogramVec
	logger               *slog.Logger
}

func NewMetricsCollector(logger *slog.Logger) *MetricsCollector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &MetricsCollector{
		registry: registry,
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_events_total",
			Help: "Total number of ledger events by type",
		}, []string{"type"}),
		transactionsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transactions_recorded_total",
			Help: "Total number of recorded transactions by transaction type",
		}, []string{"transaction_type"}),
		transactionAmount: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_transaction_amount",
			Help:    "Distribution of recorded transaction amounts in minor units",
			Buckets: prometheus.ExponentialBuckets(1, 10, 10),
		}, []string{"transaction_type"}),
		accountBalance: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ledger_account_balance",
			Help: "Balance of an account after its latest transaction",
		}, []string{"account_id"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time taken to serve an HTTP request",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		logger: logger,
	}
}

// RecordEvent counts a published domain event.
func (m *MetricsCollector) RecordEvent(eventType string) {
	m.eventsTotal.WithLabelValues(eventType).Inc()
}

// RecordTransaction counts a recorded transaction and observes its amount.
func (m *MetricsCollector) RecordTransaction(transactionType string, amount int64) {
	m.transactionsRecorded.WithLabelValues(transactionType).Inc()
	m.transactionAmount.WithLabelValues(transactionType).Observe(float64(amount))
}

func (m *MetricsCollector) UpdateAccountBalance(accountID int64, balance int64) {
	m.accountBalance.WithLabelValues(strconv.FormatInt(accountID, 10)).Set(float64(balance))
}

// ObserveRequest records the latency of a served HTTP request.
func (m *MetricsCollector) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsCollector) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
