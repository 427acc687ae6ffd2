package services

import (
	"context"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves the account owned by a principal.
	GetAccount(ctx context.Context, principal domain.Principal) (*domain.Account, error)

	// GetAccountByID retrieves an account by its identifier.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// AccountExists reports whether an account with the id exists.
	AccountExists(ctx context.Context, accountID int64) (bool, error)

	// IsActive reports whether the account is active. Unknown ids are reported as inactive.
	IsActive(ctx context.Context, accountID int64) (bool, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount registers an account for the caller.
	CreateAccount(ctx context.Context, caller domain.Principal, name string, accountType domain.AccountType) (*domain.Account, error)

	// UpdateAccount changes name and type of the caller's own account.
	UpdateAccount(ctx context.Context, caller domain.Principal, name string, accountType domain.AccountType) (*domain.Account, error)

	// ChangeAccountStatus toggles the active flag. The caller must hold ADMIN.
	ChangeAccountStatus(ctx context.Context, caller domain.Principal, accountID int64, active bool) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
