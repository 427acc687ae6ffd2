package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAccountMapping_PreservesFields(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	account := domain.Account{
		AccountID:      3,
		OwnerPrincipal: "user1",
		Name:           "Savings",
		AccountType:    domain.Business,
		IsActive:       false,
		AuditFields: domain.AuditFields{
			CreatedAt: now, CreatedBy: "user1", LastUpdatedAt: now.Add(time.Hour), LastUpdatedBy: "admin",
		},
	}

	model := ToModelAccount(account)
	assert.Equal(t, "BUSINESS", model.AccountType)
	assert.Equal(t, "admin", model.LastUpdatedBy)
	assert.Empty(t, ToDomainAccountSlice(nil))
	assert.Equal(t, account, ToDomainAccount(model))
}

func TestTransactionMapping_KeepsAbsentLegsNil(t *testing.T) {
	to := int64(2)
	record := domain.TransactionRecord{
		TransactionID:   9,
		TransactionType: domain.Deposit,
		ToAccountID:     &to,
		Amount:          100,
		Timestamp:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		RecordedBy:      "accountant",
	}

	model := ToModelTransaction(record)
	assert.Nil(t, model.FromAccountID)
	assert.Equal(t, int64(2), *model.ToAccountID)
	assert.Equal(t, record, ToDomainTransaction(model))
}
