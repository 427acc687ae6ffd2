package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/permissioned_ledger/internal/apperrors"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/permissioned_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/permissioned_ledger/internal/core/ports/services"
)

// roleService implements the RoleSvcFacade interface
type roleService struct {
	BaseService
	roleRepo portsrepo.RoleRepositoryFacade
}

// NewRoleService creates a new role service with the provided options.
func NewRoleService(repo portsrepo.RoleRepositoryFacade, options ...ServiceOption) portssvc.RoleSvcFacade {
	svc := &roleService{
		BaseService: newBaseService(options...),
		roleRepo:    repo,
	}
	if svc.RoleReader == nil {
		svc.RoleReader = svc
	}
	return svc
}

var _ portssvc.RoleSvcFacade = (*roleService)(nil)

func (s *roleService) RoleOf(ctx context.Context, principal domain.Principal) (domain.Role, error) {
	if principal.IsZero() {
		return domain.RoleNone, nil
	}
	role, err := s.roleRepo.FindRole(ctx, principal)
	if err != nil {
		s.LogError(ctx, err, "Failed to find role", slog.String("principal", string(principal)))
		return domain.RoleNone, fmt.Errorf("failed to find role: %w", err)
	}
	return role, nil
}

func (s *roleService) Owner(ctx context.Context) (domain.Principal, error) {
	owner, err := s.roleRepo.FindOwner(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find owner")
		}
		return "", fmt.Errorf("failed to find owner: %w", err)
	}
	return owner, nil
}

func (s *roleService) GrantRole(ctx context.Context, caller, target domain.Principal, role domain.Role) error {
	err := s.Sequencer.Do(ctx, func() error {
		if err := s.AuthorizeRole(ctx, caller, "granting roles", isAdmin); err != nil {
			return err
		}
		if target.IsZero() {
			return fmt.Errorf("target principal is required: %w", apperrors.ErrValidation)
		}
		if !role.IsValid() {
			return fmt.Errorf("unknown role '%s': %w", role, apperrors.ErrValidation)
		}
		if err := s.roleRepo.SaveRole(ctx, target, role, caller, s.Clock()); err != nil {
			return err
		}
		s.publish(ctx, domain.Event{Type: domain.EventRoleGranted, Actor: caller, Target: target, Role: role})
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Role granted",
		slog.String("target", string(target)),
		slog.String("role", string(role)))
	return nil
}

func (s *roleService) RevokeRole(ctx context.Context, caller, target domain.Principal) error {
	err := s.Sequencer.Do(ctx, func() error {
		if err := s.AuthorizeRole(ctx, caller, "revoking roles", isAdmin); err != nil {
			return err
		}
		if target.IsZero() {
			return fmt.Errorf("target principal is required: %w", apperrors.ErrValidation)
		}
		if err := s.roleRepo.SaveRole(ctx, target, domain.RoleNone, caller, s.Clock()); err != nil {
			return err
		}
		s.publish(ctx, domain.Event{Type: domain.EventRoleRevoked, Actor: caller, Target: target, Role: domain.RoleNone})
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Role revoked", slog.String("target", string(target)))
	return nil
}

func (s *roleService) TransferOwnership(ctx context.Context, caller, newOwner domain.Principal) error {
	err := s.Sequencer.Do(ctx, func() error {
		owner, err := s.roleRepo.FindOwner(ctx)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find owner")
			return fmt.Errorf("failed to find owner: %w", err)
		}
		if owner.IsZero() || owner != caller {
			return fmt.Errorf("only the owner can transfer ownership: %w", apperrors.ErrUnauthorized)
		}
		if newOwner.IsZero() {
			return fmt.Errorf("new owner is required: %w", apperrors.ErrValidation)
		}
		if err := s.roleRepo.SaveOwner(ctx, newOwner, caller, s.Clock()); err != nil {
			return err
		}
		s.publish(ctx, domain.Event{Type: domain.EventOwnershipTransferred, Actor: caller, Target: newOwner})
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Ownership transferred", slog.String("new_owner", string(newOwner)))
	return nil
}

func (s *roleService) Bootstrap(ctx context.Context, creator domain.Principal) error {
	if creator.IsZero() {
		return fmt.Errorf("creator principal is required: %w", apperrors.ErrValidation)
	}

	var seeded bool
	err := s.Sequencer.Do(ctx, func() error {
		var err error
		seeded, err = s.roleRepo.InitializeOwner(ctx, creator, s.Clock())
		if err == nil && seeded {
			s.publish(ctx, domain.Event{Type: domain.EventRoleGranted, Actor: creator, Target: creator, Role: domain.RoleAdmin})
		}
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to bootstrap role registry", slog.String("creator", string(creator)))
		return fmt.Errorf("failed to bootstrap role registry: %w", err)
	}

	if seeded {
		s.LogInfo(ctx, "Role registry bootstrapped", slog.String("owner", string(creator)))
	} else {
		s.LogDebug(ctx, "Role registry already has an owner")
	}
	return nil
}

func isAdmin(r domain.Role) bool {
	return r == domain.RoleAdmin
}
