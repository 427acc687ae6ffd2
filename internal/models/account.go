package models

// Account is the row shape of the accounts table.
type Account struct {
	AccountID      int64  `db:"account_id"`
	OwnerPrincipal string `db:"owner_principal"`
	Name           string `db:"name"`
	AccountType    string `db:"account_type"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}
