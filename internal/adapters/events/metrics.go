package events

import (
	"context"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	"github.com/SscSPs/permissioned_ledger/pkg/metrics"
)

// MetricsPublisher turns events into Prometheus series.
type MetricsPublisher struct {
	collector *metrics.MetricsCollector
}

func NewMetricsPublisher(collector *metrics.MetricsCollector) *MetricsPublisher {
	return &MetricsPublisher{collector: collector}
}

func (p *MetricsPublisher) Publish(_ context.Context, event domain.Event) {
	p.collector.RecordEvent(string(event.Type))
	if event.Type != domain.EventTransactionRecorded || event.Transaction == nil {
		return
	}
	p.collector.RecordTransaction(string(event.Transaction.TransactionType), event.Transaction.Amount)
	for accountID, balance := range event.Balances {
		p.collector.UpdateAccountBalance(accountID, balance)
	}
}
