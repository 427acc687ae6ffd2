package mapping

import (
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	"github.com/SscSPs/permissioned_ledger/internal/models"
)

// ToModelTransaction converts a domain TransactionRecord to a model Transaction
func ToModelTransaction(d domain.TransactionRecord) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		TransactionType: string(d.TransactionType),
		FromAccountID:   d.FromAccountID,
		ToAccountID:     d.ToAccountID,
		Amount:          d.Amount,
		Description:     d.Description,
		RecordedAt:      d.Timestamp,
		RecordedBy:      string(d.RecordedBy),
	}
}

// ToDomainTransaction converts a model Transaction to a domain TransactionRecord
func ToDomainTransaction(m models.Transaction) domain.TransactionRecord {
	return domain.TransactionRecord{
		TransactionID:   m.TransactionID,
		TransactionType: domain.TransactionType(m.TransactionType),
		FromAccountID:   m.FromAccountID,
		ToAccountID:     m.ToAccountID,
		Amount:          m.Amount,
		Description:     m.Description,
		Timestamp:       m.RecordedAt,
		RecordedBy:      domain.Principal(m.RecordedBy),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain records
func ToDomainTransactionSlice(ms []models.Transaction) []domain.TransactionRecord {
	ds := make([]domain.TransactionRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
