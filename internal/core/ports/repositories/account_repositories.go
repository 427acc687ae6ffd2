package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByPrincipal retrieves the account owned by a principal.
	FindAccountByPrincipal(ctx context.Context, principal domain.Principal) (*domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by id.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account, assigning the next account id.
	// It returns apperrors.ErrAlreadyExists if the owner principal already has an account.
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// UpdateAccountDetails overwrites name and type of an existing account.
	UpdateAccountDetails(ctx context.Context, account domain.Account) error

	// UpdateAccountStatus sets the active flag of an existing account.
	UpdateAccountStatus(ctx context.Context, accountID int64, active bool, actor domain.Principal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
