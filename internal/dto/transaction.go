package dto

import (
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
)

// RecordTransactionRequest defines the data needed to record a ledger movement.
// Amount and the account legs are validated by the ledger so that its
// rejection order is preserved.
type RecordTransactionRequest struct {
	TransactionType domain.TransactionType `json:"transactionType" binding:"required"`
	FromAccountID   *int64                 `json:"fromAccountID"`
	ToAccountID     *int64                 `json:"toAccountID"`
	Amount          int64                  `json:"amount"`
	Description     string                 `json:"description" binding:"max=512"`
}

// ToDomain converts the request into the ledger input.
func (r RecordTransactionRequest) ToDomain() domain.TransactionRequest {
	return domain.TransactionRequest{
		Type:          r.TransactionType,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Description:   r.Description,
	}
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   int64                  `json:"transactionID"`
	TransactionType domain.TransactionType `json:"transactionType"`
	FromAccountID   *int64                 `json:"fromAccountID,omitempty"`
	ToAccountID     *int64                 `json:"toAccountID,omitempty"`
	Amount          int64                  `json:"amount"`
	Description     string                 `json:"description"`
	Timestamp       time.Time              `json:"timestamp"`
	RecordedBy      domain.Principal       `json:"recordedBy"`
}

// ToTransactionResponse converts a domain.TransactionRecord to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		TransactionType: txn.TransactionType,
		FromAccountID:   txn.FromAccountID,
		ToAccountID:     txn.ToAccountID,
		Amount:          txn.Amount,
		Description:     txn.Description,
		Timestamp:       txn.Timestamp,
		RecordedBy:      txn.RecordedBy,
	}
}

// ToTransactionResponses converts a slice of domain.TransactionRecord to []TransactionResponse.
func ToTransactionResponses(txns []domain.TransactionRecord) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ListTransactionsParams defines query parameters for reading the audit trail.
type ListTransactionsParams struct {
	AccountID *int64  `form:"accountID" binding:"omitempty,min=1"`
	Limit     int     `form:"limit,default=50" binding:"min=0"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is one page of the audit trail.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// AuditReportResponse is the result of a balance reconciliation.
type AuditReportResponse struct {
	Consistent       bool                     `json:"consistent"`
	TransactionCount int                      `json:"transactionCount"`
	AccountCount     int                      `json:"accountCount"`
	Mismatches       []domain.BalanceMismatch `json:"mismatches"`
	CheckedAt        time.Time                `json:"checkedAt"`
}

// ToAuditReportResponse converts a domain.AuditReport to its DTO.
func ToAuditReportResponse(r *domain.AuditReport) AuditReportResponse {
	mismatches := r.Mismatches
	if mismatches == nil {
		mismatches = []domain.BalanceMismatch{}
	}
	return AuditReportResponse{
		Consistent:       r.Consistent(),
		TransactionCount: r.TransactionCount,
		AccountCount:     r.AccountCount,
		Mismatches:       mismatches,
		CheckedAt:        r.CheckedAt,
	}
}
