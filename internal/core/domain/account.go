package domain

// AccountType classifies who an account belongs to.
type AccountType string

const (
	Personal AccountType = "PERSONAL"
	Business AccountType = "BUSINESS"
)

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	return t == Personal || t == Business
}

// Account is the single account record a principal may own.
type Account struct {
	AccountID      int64       `json:"accountID"`      // 1-based, never reused
	OwnerPrincipal Principal   `json:"ownerPrincipal"` // The principal that created it
	Name           string      `json:"name"`
	AccountType    AccountType `json:"accountType"`
	IsActive       bool        `json:"isActive"` // Soft-disable only; accounts are never deleted
	AuditFields
}
