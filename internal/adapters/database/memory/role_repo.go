package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/apperrors"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
)

type RoleRepository struct {
	mu    sync.RWMutex
	roles map[domain.Principal]domain.Role
	owner domain.Principal
}

func NewRoleRepository() *RoleRepository {
	return &RoleRepository{
		roles: make(map[domain.Principal]domain.Role),
	}
}

func (r *RoleRepository) FindRole(ctx context.Context, principal domain.Principal) (domain.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, exists := r.roles[principal]
	if !exists {
		return domain.RoleNone, nil
	}
	return role, nil
}

func (r *RoleRepository) FindOwner(ctx context.Context) (domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.owner.IsZero() {
		return "", fmt.Errorf("%w: owner", apperrors.ErrNotFound)
	}
	return r.owner, nil
}

func (r *RoleRepository) SaveRole(ctx context.Context, principal domain.Principal, role domain.Role, actor domain.Principal, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if role == domain.RoleNone {
		delete(r.roles, principal)
		return nil
	}
	r.roles[principal] = role
	return nil
}

func (r *RoleRepository) SaveOwner(ctx context.Context, owner domain.Principal, actor domain.Principal, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.owner = owner
	return nil
}

func (r *RoleRepository) InitializeOwner(ctx context.Context, creator domain.Principal, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.owner.IsZero() {
		return false, nil
	}
	r.owner = creator
	r.roles[creator] = domain.RoleAdmin
	return true, nil
}
