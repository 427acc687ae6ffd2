package services

import (
	portsrepo "github.com/SscSPs/permissioned_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/permissioned_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// All services share one Sequencer, so mutations across the registries are totally ordered.
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	seq := NewSequencer()
	container := &portssvc.ServiceContainer{}

	// Initialize the role registry first since the other services authorize through it
	container.Role = NewRoleService(repos.RoleRepo,
		WithSequencer(seq),
		WithEventPublisher(publisher),
	)

	container.Account = NewAccountService(repos.AccountRepo,
		WithSequencer(seq),
		WithEventPublisher(publisher),
		WithRoleReader(container.Role),
	)

	container.Ledger = NewLedgerService(repos.LedgerRepo, container.Account,
		WithSequencer(seq),
		WithEventPublisher(publisher),
		WithRoleReader(container.Role),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.RoleSvcFacade    = (*roleService)(nil)
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
)
