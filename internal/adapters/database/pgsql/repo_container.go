package pgsql

import (
	portsrepo "github.com/SscSPs/permissioned_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RoleRepo:    newPgxRoleRepository(dbPool),
		AccountRepo: newPgxAccountRepository(dbPool),
		LedgerRepo:  newPgxLedgerRepository(dbPool),
	}
}
