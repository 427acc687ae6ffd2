package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/apperrors"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
)

type AccountRepository struct {
	mu             sync.RWMutex
	accounts       []domain.Account // index i holds account id i+1
	principalIndex map[domain.Principal]int64
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		principalIndex: make(map[domain.Principal]int64),
	}
}

// lookup must be called with the lock held.
func (r *AccountRepository) lookup(accountID int64) (*domain.Account, bool) {
	if accountID < 1 || accountID > int64(len(r.accounts)) {
		return nil, false
	}
	return &r.accounts[accountID-1], true
}

func (r *AccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.lookup(accountID)
	if !exists {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	result := *account
	return &result, nil
}

func (r *AccountRepository) FindAccountByPrincipal(ctx context.Context, principal domain.Principal) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accountID, exists := r.principalIndex[principal]
	if !exists {
		return nil, fmt.Errorf("%w: account of %s", apperrors.ErrNotFound, principal)
	}
	result := r.accounts[accountID-1]
	return &result, nil
}

func (r *AccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset >= len(r.accounts) {
		return []domain.Account{}, nil
	}
	end := offset + limit
	if end > len(r.accounts) {
		end = len(r.accounts)
	}
	result := make([]domain.Account, end-offset)
	copy(result, r.accounts[offset:end])
	return result, nil
}

func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.principalIndex[account.OwnerPrincipal]; exists {
		return nil, fmt.Errorf("%w: principal %s owns account %d", apperrors.ErrAlreadyExists, account.OwnerPrincipal, existing)
	}

	account.AccountID = int64(len(r.accounts)) + 1
	r.accounts = append(r.accounts, account)
	r.principalIndex[account.OwnerPrincipal] = account.AccountID

	return &account, nil
}

func (r *AccountRepository) UpdateAccountDetails(ctx context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.lookup(account.AccountID)
	if !exists {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, account.AccountID)
	}

	stored.Name = account.Name
	stored.AccountType = account.AccountType
	stored.LastUpdatedAt = account.LastUpdatedAt
	stored.LastUpdatedBy = account.LastUpdatedBy
	return nil
}

func (r *AccountRepository) UpdateAccountStatus(ctx context.Context, accountID int64, active bool, actor domain.Principal, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.lookup(accountID)
	if !exists {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}

	stored.IsActive = active
	stored.LastUpdatedAt = now
	stored.LastUpdatedBy = actor
	return nil
}
