package mapping

import (
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	"github.com/SscSPs/permissioned_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		OwnerPrincipal: string(d.OwnerPrincipal),
		Name:           d.Name,
		AccountType:    string(d.AccountType),
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		OwnerPrincipal: domain.Principal(m.OwnerPrincipal),
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
