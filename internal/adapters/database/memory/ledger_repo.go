package memory

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/SscSPs/permissioned_ledger/internal/apperrors"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
)

type LedgerRepository struct {
	mu           sync.RWMutex
	balances     map[int64]int64
	transactions []domain.TransactionRecord // index i holds transaction id i+1
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		balances: make(map[int64]int64),
	}
}

func (r *LedgerRepository) FindBalance(ctx context.Context, accountID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.balances[accountID], nil
}

func (r *LedgerRepository) ListBalances(ctx context.Context) (map[int64]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[int64]int64, len(r.balances))
	for id, balance := range r.balances {
		result[id] = balance
	}
	return result, nil
}

func (r *LedgerRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.TransactionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if transactionID < 1 || transactionID > int64(len(r.transactions)) {
		return nil, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
	}
	result := r.transactions[transactionID-1]
	return &result, nil
}

func (r *LedgerRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, afterID int64, limit int) ([]domain.TransactionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if afterID < 0 {
		afterID = 0
	}
	result := []domain.TransactionRecord{}
	for i := afterID; i < int64(len(r.transactions)) && len(result) < limit; i++ {
		record := r.transactions[i]
		if filter.AccountID != nil && !touches(record, *filter.AccountID) {
			continue
		}
		result = append(result, record)
	}
	return result, nil
}

func (r *LedgerRepository) CountTransactions(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.transactions)), nil
}

func (r *LedgerRepository) AppendTransaction(ctx context.Context, record domain.TransactionRecord) (*domain.TransactionRecord, map[int64]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changes := record.BalanceChanges()
	resulting := make(map[int64]int64, len(changes))
	for accountID, delta := range changes {
		current := r.balances[accountID]
		if delta > 0 && current > math.MaxInt64-delta {
			return nil, nil, fmt.Errorf("%w: account %d holds %d, credit %d", apperrors.ErrBalanceOverflow, accountID, current, delta)
		}
		next := current + delta
		if next < 0 {
			return nil, nil, fmt.Errorf("%w: account %d would hold %d", apperrors.ErrInsufficientBalance, accountID, next)
		}
		resulting[accountID] = next
	}

	record.TransactionID = int64(len(r.transactions)) + 1
	for accountID, balance := range resulting {
		r.balances[accountID] = balance
	}
	r.transactions = append(r.transactions, record)

	return &record, resulting, nil
}

func touches(record domain.TransactionRecord, accountID int64) bool {
	return (record.FromAccountID != nil && *record.FromAccountID == accountID) ||
		(record.ToAccountID != nil && *record.ToAccountID == accountID)
}
