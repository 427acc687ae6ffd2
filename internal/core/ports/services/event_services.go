package services

import (
	"context"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
)

// EventPublisher receives notifications after successful mutations.
// Delivery is best-effort: it has no way to fail the operation that emitted the event.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
}
