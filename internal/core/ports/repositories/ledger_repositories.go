package repositories

import (
	"context"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
)

// BalanceReader defines read operations for derived balances
type BalanceReader interface {
	// FindBalance returns the balance of an account, 0 if it was never touched.
	FindBalance(ctx context.Context, accountID int64) (int64, error)

	// ListBalances returns every stored non-default balance keyed by account id.
	ListBalances(ctx context.Context) (map[int64]int64, error)
}

// TransactionReader defines read operations for the transaction log
type TransactionReader interface {
	// FindTransactionByID retrieves a single record.
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.TransactionRecord, error)

	// ListTransactions returns up to limit records with an id greater than afterID, in id order.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, afterID int64, limit int) ([]domain.TransactionRecord, error)

	// CountTransactions returns the length of the log.
	CountTransactions(ctx context.Context) (int64, error)
}

// TransactionWriter defines the single mutation of the ledger
type TransactionWriter interface {
	// AppendTransaction assigns the next transaction id, applies the record's balance
	// changes and appends it, all atomically. It returns the stored record and the
	// resulting balances of the touched accounts. If any resulting balance would be
	// negative it returns apperrors.ErrInsufficientBalance and changes nothing.
	AppendTransaction(ctx context.Context, record domain.TransactionRecord) (*domain.TransactionRecord, map[int64]int64, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	BalanceReader
	TransactionReader
	TransactionWriter
}
