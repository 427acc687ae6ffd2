package services_test

import (
	"context"
	"sync"

	"github.com/SscSPs/permissioned_ledger/internal/adapters/database/memory"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/permissioned_ledger/internal/core/ports/services"
	"github.com/SscSPs/permissioned_ledger/internal/core/services"
	"github.com/stretchr/testify/mock"
)

const (
	owner      domain.Principal = "owner"
	admin      domain.Principal = "admin"
	accountant domain.Principal = "accountant"
	auditor    domain.Principal = "auditor"
	user1      domain.Principal = "user1"
	user2      domain.Principal = "user2"
)

// MockEventPublisher is a mock type for the EventPublisher interface
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.Event) {
	m.Called(ctx, event)
}

// recordingPublisher keeps every published event in order.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) ofType(t domain.EventType) []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.Event
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// newBootstrappedContainer returns services over fresh in-memory storage with the
// owner bootstrapped and admin, accountant and auditor roles granted.
func newBootstrappedContainer(ctx context.Context, publisher portssvc.EventPublisher) (*portssvc.ServiceContainer, error) {
	container := services.NewServiceContainer(memory.NewRepositoryProvider(), publisher)
	if err := container.Role.Bootstrap(ctx, owner); err != nil {
		return nil, err
	}
	grants := map[domain.Principal]domain.Role{
		admin:      domain.RoleAdmin,
		accountant: domain.RoleAccountant,
		auditor:    domain.RoleAuditor,
	}
	for p, r := range grants {
		if err := container.Role.GrantRole(ctx, owner, p, r); err != nil {
			return nil, err
		}
	}
	return container, nil
}

func int64Ptr(v int64) *int64 {
	return &v
}
