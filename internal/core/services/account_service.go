package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/permissioned_ledger/internal/apperrors"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/permissioned_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/permissioned_ledger/internal/core/ports/services"
)

const (
	maxAccountNameLength = 128
	defaultListLimit     = 20
	maxListLimit         = 100
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service with the provided options.
// ChangeAccountStatus needs a role reader; see WithRoleReader.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(options...),
		accountRepo: repo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func validateAccountFields(name string, accountType domain.AccountType) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("account name is required: %w", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(name) > maxAccountNameLength {
		return "", fmt.Errorf("account name exceeds %d characters: %w", maxAccountNameLength, apperrors.ErrValidation)
	}
	if !accountType.IsValid() {
		return "", fmt.Errorf("unknown account type '%s': %w", accountType, apperrors.ErrValidation)
	}
	return name, nil
}

func (s *accountService) CreateAccount(ctx context.Context, caller domain.Principal, name string, accountType domain.AccountType) (*domain.Account, error) {
	if caller.IsZero() {
		return nil, fmt.Errorf("caller principal is required: %w", apperrors.ErrValidation)
	}
	name, err := validateAccountFields(name, accountType)
	if err != nil {
		return nil, err
	}

	var created *domain.Account
	err = s.Sequencer.Do(ctx, func() error {
		existing, err := s.accountRepo.FindAccountByPrincipal(ctx, caller)
		if err == nil && existing != nil {
			return fmt.Errorf("principal %s already owns account %d: %w", caller, existing.AccountID, apperrors.ErrAlreadyExists)
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check existing account: %w", err)
		}

		now := s.Clock()
		created, err = s.accountRepo.SaveAccount(ctx, domain.Account{
			OwnerPrincipal: caller,
			Name:           name,
			AccountType:    accountType,
			IsActive:       true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     caller,
				LastUpdatedAt: now,
				LastUpdatedBy: caller,
			},
		})
		if err != nil {
			return err
		}
		s.publish(ctx, domain.Event{Type: domain.EventAccountCreated, Actor: caller, Account: copyAccount(created)})
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyExists) {
			s.LogError(ctx, err, "Failed to create account", slog.String("owner", string(caller)))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.Int64("account_id", created.AccountID),
		slog.String("owner", string(caller)))
	return created, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, caller domain.Principal, name string, accountType domain.AccountType) (*domain.Account, error) {
	name, err := validateAccountFields(name, accountType)
	if err != nil {
		return nil, err
	}

	var updated *domain.Account
	err = s.Sequencer.Do(ctx, func() error {
		account, err := s.accountRepo.FindAccountByPrincipal(ctx, caller)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.ErrNotOwner
			}
			return fmt.Errorf("failed to find caller account: %w", err)
		}

		account.Name = name
		account.AccountType = accountType
		account.LastUpdatedAt = s.Clock()
		account.LastUpdatedBy = caller
		if err := s.accountRepo.UpdateAccountDetails(ctx, *account); err != nil {
			return err
		}
		updated = account
		s.publish(ctx, domain.Event{Type: domain.EventAccountUpdated, Actor: caller, Account: copyAccount(updated)})
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			s.LogError(ctx, err, "Failed to update account", slog.String("owner", string(caller)))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.Int64("account_id", updated.AccountID))
	return updated, nil
}

func (s *accountService) ChangeAccountStatus(ctx context.Context, caller domain.Principal, accountID int64, active bool) (*domain.Account, error) {
	var changed *domain.Account
	err := s.Sequencer.Do(ctx, func() error {
		if err := s.AuthorizeRole(ctx, caller, "changing account status", isAdmin); err != nil {
			return err
		}
		account, err := s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %d", apperrors.ErrAccountNotFound, accountID)
			}
			return fmt.Errorf("failed to find account: %w", err)
		}

		now := s.Clock()
		if err := s.accountRepo.UpdateAccountStatus(ctx, accountID, active, caller, now); err != nil {
			return err
		}
		account.IsActive = active
		account.LastUpdatedAt = now
		account.LastUpdatedBy = caller
		changed = account
		s.publish(ctx, domain.Event{Type: domain.EventAccountStatusChanged, Actor: caller, Account: copyAccount(changed)})
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrUnauthorized) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to change account status", slog.Int64("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account status changed",
		slog.Int64("account_id", accountID),
		slog.Bool("is_active", active))
	return changed, nil
}

func (s *accountService) GetAccount(ctx context.Context, principal domain.Principal) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByPrincipal(ctx, principal)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.String("principal", string(principal)))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", apperrors.ErrAccountNotFound, accountID)
		}
		s.LogError(ctx, err, "Failed to get account by ID", slog.Int64("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) AccountExists(ctx context.Context, accountID int64) (bool, error) {
	_, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check account %d: %w", accountID, err)
	}
	return true, nil
}

func (s *accountService) IsActive(ctx context.Context, accountID int64) (bool, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check account %d: %w", accountID, err)
	}
	return account.IsActive, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

// copyAccount detaches the event payload from the returned record.
func copyAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
