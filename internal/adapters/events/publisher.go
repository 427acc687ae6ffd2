package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/permissioned_ledger/internal/core/ports/services"
	"github.com/SscSPs/permissioned_ledger/internal/middleware"
)

var (
	_ portssvc.EventPublisher = (*LogPublisher)(nil)
	_ portssvc.EventPublisher = (*MultiPublisher)(nil)
	_ portssvc.EventPublisher = (*MetricsPublisher)(nil)
	_ portssvc.EventPublisher = (*PosthogPublisher)(nil)
)

// LogPublisher writes every event to the request-scoped logger.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(ctx context.Context, event domain.Event) {
	middleware.GetLoggerFromCtx(ctx).Info("Ledger event", eventAttrs(event)...)
}

func eventAttrs(event domain.Event) []any {
	attrs := []any{
		slog.String("event_type", string(event.Type)),
		slog.String("actor", string(event.Actor)),
		slog.Time("occurred_at", event.OccurredAt),
	}
	if !event.Target.IsZero() {
		attrs = append(attrs, slog.String("target", string(event.Target)))
	}
	if event.Role != "" {
		attrs = append(attrs, slog.String("role", string(event.Role)))
	}
	if event.Account != nil {
		attrs = append(attrs,
			slog.Int64("account_id", event.Account.AccountID),
			slog.Bool("is_active", event.Account.IsActive))
	}
	if event.Transaction != nil {
		attrs = append(attrs,
			slog.Int64("transaction_id", event.Transaction.TransactionID),
			slog.String("transaction_type", string(event.Transaction.TransactionType)),
			slog.Int64("amount", event.Transaction.Amount))
	}
	return attrs
}

// MultiPublisher fans an event out to several sinks. A panicking sink is
// logged and skipped so the remaining sinks still receive the event.
type MultiPublisher struct {
	publishers []portssvc.EventPublisher
}

func NewMultiPublisher(publishers ...portssvc.EventPublisher) *MultiPublisher {
	filtered := make([]portssvc.EventPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			filtered = append(filtered, p)
		}
	}
	return &MultiPublisher{publishers: filtered}
}

func (p *MultiPublisher) Publish(ctx context.Context, event domain.Event) {
	for _, publisher := range p.publishers {
		publishSafely(ctx, publisher, event)
	}
}

func publishSafely(ctx context.Context, publisher portssvc.EventPublisher, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Event publisher panicked",
				slog.String("event_type", string(event.Type)),
				slog.String("publisher", fmt.Sprintf("%T", publisher)),
				slog.Any("panic", r))
		}
	}()
	publisher.Publish(ctx, event)
}
