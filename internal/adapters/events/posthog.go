package events

import (
	"context"
	"log/slog"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	"github.com/posthog/posthog-go"
)

const defaultPosthogEndpoint = "https://eu.i.posthog.com"

// posthogClient is the subset of posthog.Client the publisher uses.
type posthogClient interface {
	Enqueue(posthog.Message) error
	Close() error
}

// PosthogPublisher forwards events to PostHog as product analytics captures.
// A publisher created without an API key is a no-op.
type PosthogPublisher struct {
	client posthogClient
	logger *slog.Logger
}

func NewPosthogPublisher(apiKey, endpoint string, logger *slog.Logger) *PosthogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &PosthogPublisher{logger: logger}
	}
	if endpoint == "" {
		endpoint = defaultPosthogEndpoint
	}

	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &PosthogPublisher{logger: logger}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return &PosthogPublisher{client: client, logger: logger}
}

// newPosthogPublisherWithClient is used by tests to inject a fake client.
func newPosthogPublisherWithClient(client posthogClient) *PosthogPublisher {
	return &PosthogPublisher{client: client, logger: slog.Default()}
}

func (p *PosthogPublisher) IsInitialized() bool {
	return p.client != nil
}

func (p *PosthogPublisher) Publish(_ context.Context, event domain.Event) {
	if p.client == nil {
		return
	}
	err := p.client.Enqueue(posthog.Capture{
		DistinctId: string(event.Actor),
		Event:      string(event.Type),
		Timestamp:  event.OccurredAt,
		Properties: posthogProperties(event),
	})
	if err != nil {
		p.logger.Warn("Failed to enqueue posthog event",
			slog.String("event_type", string(event.Type)),
			slog.String("error", err.Error()))
	}
}

func posthogProperties(event domain.Event) posthog.Properties {
	props := posthog.NewProperties()
	if !event.Target.IsZero() {
		props.Set("target", string(event.Target))
	}
	if event.Role != "" {
		props.Set("role", string(event.Role))
	}
	if event.Account != nil {
		props.Set("account_id", event.Account.AccountID).
			Set("account_type", string(event.Account.AccountType)).
			Set("is_active", event.Account.IsActive)
	}
	if event.Transaction != nil {
		props.Set("transaction_id", event.Transaction.TransactionID).
			Set("transaction_type", string(event.Transaction.TransactionType)).
			Set("amount", event.Transaction.Amount)
	}
	return props
}

// Close flushes pending captures.
func (p *PosthogPublisher) Close() {
	if p.client == nil {
		return
	}
	if err := p.client.Close(); err != nil {
		p.logger.Warn("Failed to close posthog client", slog.String("error", err.Error()))
	}
}
