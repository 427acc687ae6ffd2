package services

import (
	"context"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
)

// LedgerReaderSvc defines read operations on balances and the transaction log
type LedgerReaderSvc interface {
	// GetBalance returns the balance of an existing account.
	GetBalance(ctx context.Context, accountID int64) (int64, error)

	// GetTransaction retrieves a single transaction record.
	GetTransaction(ctx context.Context, transactionID int64) (*domain.TransactionRecord, error)

	// ListTransactions returns a page of the audit trail and a token for the next page.
	ListTransactions(ctx context.Context, caller domain.Principal, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error)

	// AuditBalances recomputes all balances from the log and compares them with the stored ones.
	AuditBalances(ctx context.Context, caller domain.Principal) (*domain.AuditReport, error)
}

// LedgerWriterSvc defines the mutating operation of the ledger
type LedgerWriterSvc interface {
	// RecordTransaction validates and applies a deposit, withdrawal or transfer.
	RecordTransaction(ctx context.Context, caller domain.Principal, req domain.TransactionRequest) (*domain.TransactionRecord, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
