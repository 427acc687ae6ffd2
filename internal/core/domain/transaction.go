package domain

import (
	"fmt"
	"time"
)

// TransactionType is the kind of monetary movement a record describes.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Transfer   TransactionType = "TRANSFER"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	switch t {
	case Deposit, Withdrawal, Transfer:
		return true
	default:
		return false
	}
}

// TransactionRecord is an immutable entry of the ledger log.
// FromAccountID is nil for deposits and ToAccountID is nil for withdrawals.
type TransactionRecord struct {
	TransactionID   int64           `json:"transactionID"`
	TransactionType TransactionType `json:"transactionType"`
	FromAccountID   *int64          `json:"fromAccountID,omitempty"`
	ToAccountID     *int64          `json:"toAccountID,omitempty"`
	Amount          int64           `json:"amount"`
	Description     string          `json:"description"`
	Timestamp       time.Time       `json:"timestamp"`
	RecordedBy      Principal       `json:"recordedBy"`
}

// BalanceChanges returns the signed delta the record applies to each account it references.
func (t TransactionRecord) BalanceChanges() map[int64]int64 {
	changes := make(map[int64]int64, 2)
	if t.FromAccountID != nil {
		changes[*t.FromAccountID] -= t.Amount
	}
	if t.ToAccountID != nil {
		changes[*t.ToAccountID] += t.Amount
	}
	return changes
}

// Validate checks the structural invariants every stored record must satisfy.
func (t TransactionRecord) Validate() error {
	if t.Amount <= 0 {
		return fmt.Errorf("transaction %d: amount must be positive", t.TransactionID)
	}
	switch t.TransactionType {
	case Deposit:
		if t.ToAccountID == nil || t.FromAccountID != nil {
			return fmt.Errorf("transaction %d: deposit must only reference a destination account", t.TransactionID)
		}
	case Withdrawal:
		if t.FromAccountID == nil || t.ToAccountID != nil {
			return fmt.Errorf("transaction %d: withdrawal must only reference a source account", t.TransactionID)
		}
	case Transfer:
		if t.FromAccountID == nil || t.ToAccountID == nil {
			return fmt.Errorf("transaction %d: transfer must reference both accounts", t.TransactionID)
		}
		if *t.FromAccountID == *t.ToAccountID {
			return fmt.Errorf("transaction %d: transfer source and destination must differ", t.TransactionID)
		}
	default:
		return fmt.Errorf("transaction %d: unknown transaction type '%s'", t.TransactionID, t.TransactionType)
	}
	return nil
}

// TransactionRequest is the input of a ledger recording.
type TransactionRequest struct {
	Type          TransactionType
	FromAccountID *int64
	ToAccountID   *int64
	Amount        int64
	Description   string
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	AccountID *int64 // Records where the account is either leg
}

// BalanceMismatch describes one account whose stored balance disagrees with the log.
type BalanceMismatch struct {
	AccountID int64 `json:"accountID"`
	Stored    int64 `json:"stored"`
	Computed  int64 `json:"computed"`
}

// AuditReport is the outcome of recomputing all balances from the log.
type AuditReport struct {
	TransactionCount int               `json:"transactionCount"`
	AccountCount     int               `json:"accountCount"`
	Mismatches       []BalanceMismatch `json:"mismatches"`
	CheckedAt        time.Time         `json:"checkedAt"`
}

// Consistent reports whether no mismatches were found.
func (r AuditReport) Consistent() bool {
	return len(r.Mismatches) == 0
}
