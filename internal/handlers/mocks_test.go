package handlers_test

import (
	"context"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/permissioned_ledger/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock RoleService ---
type MockRoleService struct {
	mock.Mock
}

func (m *MockRoleService) RoleOf(ctx context.Context, principal domain.Principal) (domain.Role, error) {
	args := m.Called(ctx, principal)
	return args.Get(0).(domain.Role), args.Error(1)
}
func (m *MockRoleService) Owner(ctx context.Context) (domain.Principal, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Principal), args.Error(1)
}
func (m *MockRoleService) GrantRole(ctx context.Context, caller, target domain.Principal, role domain.Role) error {
	return m.Called(ctx, caller, target, role).Error(0)
}
func (m *MockRoleService) RevokeRole(ctx context.Context, caller, target domain.Principal) error {
	return m.Called(ctx, caller, target).Error(0)
}
func (m *MockRoleService) TransferOwnership(ctx context.Context, caller, newOwner domain.Principal) error {
	return m.Called(ctx, caller, newOwner).Error(0)
}
func (m *MockRoleService) Bootstrap(ctx context.Context, creator domain.Principal) error {
	return m.Called(ctx, creator).Error(0)
}

var _ portssvc.RoleSvcFacade = (*MockRoleService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, principal domain.Principal) (*domain.Account, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) AccountExists(ctx context.Context, accountID int64) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}
func (m *MockAccountService) IsActive(ctx context.Context, accountID int64) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, caller domain.Principal, name string, accountType domain.AccountType) (*domain.Account, error) {
	args := m.Called(ctx, caller, name, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, caller domain.Principal, name string, accountType domain.AccountType) (*domain.Account, error) {
	args := m.Called(ctx, caller, name, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ChangeAccountStatus(ctx context.Context, caller domain.Principal, accountID int64, active bool) (*domain.Account, error) {
	args := m.Called(ctx, caller, accountID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLedgerService) GetTransaction(ctx context.Context, transactionID int64) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}
func (m *MockLedgerService) ListTransactions(ctx context.Context, caller domain.Principal, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error) {
	args := m.Called(ctx, caller, filter, limit, nextToken)
	var records []domain.TransactionRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.TransactionRecord)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return records, token, args.Error(2)
}
func (m *MockLedgerService) AuditBalances(ctx context.Context, caller domain.Principal) (*domain.AuditReport, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditReport), args.Error(1)
}
func (m *MockLedgerService) RecordTransaction(ctx context.Context, caller domain.Principal, req domain.TransactionRequest) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)
