package services

import (
	"context"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
)

// RoleReaderSvc defines the read-only view of the role registry consumed by other components.
type RoleReaderSvc interface {
	// RoleOf returns the role of a principal, domain.RoleNone for unknown principals.
	RoleOf(ctx context.Context, principal domain.Principal) (domain.Role, error)

	// Owner returns the current owner principal.
	Owner(ctx context.Context) (domain.Principal, error)
}

// RoleWriterSvc defines the mutating operations of the role registry.
type RoleWriterSvc interface {
	// GrantRole sets target's role. The caller must hold ADMIN.
	GrantRole(ctx context.Context, caller, target domain.Principal, role domain.Role) error

	// RevokeRole resets target's role to NONE. The caller must hold ADMIN.
	RevokeRole(ctx context.Context, caller, target domain.Principal) error

	// TransferOwnership replaces the owner. The caller must be the current owner.
	TransferOwnership(ctx context.Context, caller, newOwner domain.Principal) error

	// Bootstrap seeds the registry with its creator if it has no owner yet.
	Bootstrap(ctx context.Context, creator domain.Principal) error
}

// RoleSvcFacade combines all role-related service interfaces
type RoleSvcFacade interface {
	RoleReaderSvc
	RoleWriterSvc
}
