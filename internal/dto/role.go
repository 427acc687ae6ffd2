package dto

import "github.com/SscSPs/permissioned_ledger/internal/core/domain"

// GrantRoleRequest sets the role of the principal named in the path.
// The role itself is checked by the service, after the caller's permission.
type GrantRoleRequest struct {
	Role domain.Role `json:"role" binding:"required"`
}

// TransferOwnershipRequest names the principal that becomes the new owner.
type TransferOwnershipRequest struct {
	NewOwner domain.Principal `json:"newOwner" binding:"required"`
}

// RoleResponse reports the role a principal holds.
type RoleResponse struct {
	Principal domain.Principal `json:"principal"`
	Role      domain.Role      `json:"role"`
}

// OwnerResponse reports the current ledger owner.
type OwnerResponse struct {
	Owner domain.Principal `json:"owner"`
}
