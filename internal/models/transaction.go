package models

import "time"

// Transaction is the row shape of the ledger_transactions table.
// from_account_id and to_account_id are NULL for deposits and withdrawals respectively.
type Transaction struct {
	TransactionID   int64     `db:"transaction_id"`
	TransactionType string    `db:"transaction_type"`
	FromAccountID   *int64    `db:"from_account_id"`
	ToAccountID     *int64    `db:"to_account_id"`
	Amount          int64     `db:"amount"`
	Description     string    `db:"description"`
	RecordedAt      time.Time `db:"recorded_at"`
	RecordedBy      string    `db:"recorded_by"`
}
