package domain

// Principal is an opaque, already-authenticated identity handle.
type Principal string

// IsZero reports whether the principal is empty.
func (p Principal) IsZero() bool {
	return p == ""
}

// Role is the single permission level a principal holds.
type Role string

const (
	RoleNone       Role = "NONE"
	RoleAdmin      Role = "ADMIN"
	RoleAccountant Role = "ACCOUNTANT"
	RoleAuditor    Role = "AUDITOR"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleNone, RoleAdmin, RoleAccountant, RoleAuditor:
		return true
	default:
		return false
	}
}

// CanRecordTransactions reports whether the role may mutate the ledger.
func (r Role) CanRecordTransactions() bool {
	return r == RoleAccountant || r == RoleAdmin
}

// CanReadAuditTrail reports whether the role may read the full transaction log.
func (r Role) CanReadAuditTrail() bool {
	return r == RoleAuditor || r == RoleAccountant || r == RoleAdmin
}

// CanAuditBalances reports whether the role may run a balance reconciliation.
func (r Role) CanAuditBalances() bool {
	return r == RoleAuditor || r == RoleAdmin
}
