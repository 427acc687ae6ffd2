package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
)

// RoleReader defines read operations for role data
type RoleReader interface {
	// FindRole returns the role held by a principal, or domain.RoleNone if none was ever assigned.
	FindRole(ctx context.Context, principal domain.Principal) (domain.Role, error)

	// FindOwner returns the current owner. It returns apperrors.ErrNotFound before bootstrap.
	FindOwner(ctx context.Context) (domain.Principal, error)
}

// RoleWriter defines write operations for role data
type RoleWriter interface {
	// SaveRole overwrites the role of a principal.
	SaveRole(ctx context.Context, principal domain.Principal, role domain.Role, actor domain.Principal, now time.Time) error

	// SaveOwner replaces the owner field.
	SaveOwner(ctx context.Context, owner domain.Principal, actor domain.Principal, now time.Time) error
}

// RoleBootstrapper seeds the registry with its creator.
type RoleBootstrapper interface {
	// InitializeOwner sets owner = creator and role(creator) = ADMIN in one step
	// if no owner exists yet. It reports whether seeding happened.
	InitializeOwner(ctx context.Context, creator domain.Principal, now time.Time) (bool, error)
}

// RoleRepositoryFacade combines all role-related repository interfaces
type RoleRepositoryFacade interface {
	RoleReader
	RoleWriter
	RoleBootstrapper
}
