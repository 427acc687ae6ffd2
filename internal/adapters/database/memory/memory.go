package memory

import (
	portsrepo "github.com/SscSPs/permissioned_ledger/internal/core/ports/repositories"
)

var (
	_ portsrepo.RoleRepositoryFacade    = (*RoleRepository)(nil)
	_ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)
	_ portsrepo.LedgerRepositoryFacade  = (*LedgerRepository)(nil)
)

// NewRepositoryProvider wires a fresh, empty set of in-memory repositories.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RoleRepo:    NewRoleRepository(),
		AccountRepo: NewAccountRepository(),
		LedgerRepo:  NewLedgerRepository(),
	}
}
