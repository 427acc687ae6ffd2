package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/apperrors"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/permissioned_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/permissioned_ledger/internal/core/ports/services"
	"github.com/SscSPs/permissioned_ledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockRoleRepository is a mock type for the RoleRepositoryFacade interface
type MockRoleRepository struct {
	mock.Mock
}

var _ portsrepo.RoleRepositoryFacade = (*MockRoleRepository)(nil)

func (m *MockRoleRepository) FindRole(ctx context.Context, principal domain.Principal) (domain.Role, error) {
	args := m.Called(ctx, principal)
	return args.Get(0).(domain.Role), args.Error(1)
}

func (m *MockRoleRepository) FindOwner(ctx context.Context) (domain.Principal, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Principal), args.Error(1)
}

func (m *MockRoleRepository) SaveRole(ctx context.Context, principal domain.Principal, role domain.Role, actor domain.Principal, now time.Time) error {
	args := m.Called(ctx, principal, role, actor, now)
	return args.Error(0)
}

func (m *MockRoleRepository) SaveOwner(ctx context.Context, newOwner domain.Principal, actor domain.Principal, now time.Time) error {
	args := m.Called(ctx, newOwner, actor, now)
	return args.Error(0)
}

func (m *MockRoleRepository) InitializeOwner(ctx context.Context, creator domain.Principal, now time.Time) (bool, error) {
	args := m.Called(ctx, creator, now)
	return args.Bool(0), args.Error(1)
}

// --- Test Suite Setup ---

type RoleServiceTestSuite struct {
	suite.Suite
	ctx           context.Context
	mockRepo      *MockRoleRepository
	mockPublisher *MockEventPublisher
	now           time.Time
	service       portssvc.RoleSvcFacade
}

func (suite *RoleServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(MockRoleRepository)
	suite.mockPublisher = new(MockEventPublisher)
	suite.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewRoleService(suite.mockRepo,
		services.WithEventPublisher(suite.mockPublisher),
		services.WithClock(func() time.Time { return suite.now }),
	)
}

func (suite *RoleServiceTestSuite) TestRoleOf_UnknownPrincipalIsNone() {
	suite.mockRepo.On("FindRole", suite.ctx, domain.Principal("stranger")).Return(domain.RoleNone, nil).Once()

	role, err := suite.service.RoleOf(suite.ctx, "stranger")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleNone, role)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RoleServiceTestSuite) TestRoleOf_RepoError() {
	suite.mockRepo.On("FindRole", suite.ctx, domain.Principal("bob")).Return(domain.RoleNone, assert.AnError).Once()

	_, err := suite.service.RoleOf(suite.ctx, "bob")

	suite.ErrorIs(err, assert.AnError)
}

func (suite *RoleServiceTestSuite) TestGrantRole_Success() {
	suite.mockRepo.On("FindRole", suite.ctx, admin).Return(domain.RoleAdmin, nil).Once()
	suite.mockRepo.On("SaveRole", suite.ctx, accountant, domain.RoleAccountant, admin, suite.now).Return(nil).Once()
	suite.mockPublisher.On("Publish", suite.ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventRoleGranted && e.Target == accountant && e.Role == domain.RoleAccountant && e.Actor == admin
	})).Once()

	err := suite.service.GrantRole(suite.ctx, admin, accountant, domain.RoleAccountant)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *RoleServiceTestSuite) TestGrantRole_NonAdminRejected() {
	for _, role := range []domain.Role{domain.RoleNone, domain.RoleAccountant, domain.RoleAuditor} {
		suite.mockRepo.On("FindRole", suite.ctx, user1).Return(role, nil).Once()

		err := suite.service.GrantRole(suite.ctx, user1, user2, domain.RoleAdmin)

		suite.ErrorIs(err, apperrors.ErrUnauthorized, "role %s must not grant", role)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *RoleServiceTestSuite) TestGrantRole_UnknownRoleRejected() {
	suite.mockRepo.On("FindRole", suite.ctx, admin).Return(domain.RoleAdmin, nil).Once()

	err := suite.service.GrantRole(suite.ctx, admin, user1, domain.Role("SUPERUSER"))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RoleServiceTestSuite) TestRevokeRole_Success() {
	suite.mockRepo.On("FindRole", suite.ctx, admin).Return(domain.RoleAdmin, nil).Once()
	suite.mockRepo.On("SaveRole", suite.ctx, auditor, domain.RoleNone, admin, suite.now).Return(nil).Once()
	suite.mockPublisher.On("Publish", suite.ctx, mock.AnythingOfType("domain.Event")).Once()

	err := suite.service.RevokeRole(suite.ctx, admin, auditor)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RoleServiceTestSuite) TestRevokeRole_EmptyTarget() {
	suite.mockRepo.On("FindRole", suite.ctx, admin).Return(domain.RoleAdmin, nil).Once()

	err := suite.service.RevokeRole(suite.ctx, admin, "")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RoleServiceTestSuite) TestTransferOwnership_OnlyOwner() {
	suite.mockRepo.On("FindOwner", suite.ctx).Return(owner, nil)

	err := suite.service.TransferOwnership(suite.ctx, admin, user1)
	suite.ErrorIs(err, apperrors.ErrUnauthorized, "an admin is not the owner")

	suite.mockRepo.On("SaveOwner", suite.ctx, user1, owner, suite.now).Return(nil).Once()
	suite.mockPublisher.On("Publish", suite.ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventOwnershipTransferred && e.Target == user1
	})).Once()

	err = suite.service.TransferOwnership(suite.ctx, owner, user1)
	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *RoleServiceTestSuite) TestTransferOwnership_BeforeBootstrap() {
	suite.mockRepo.On("FindOwner", suite.ctx).Return(domain.Principal(""), apperrors.ErrNotFound).Once()

	err := suite.service.TransferOwnership(suite.ctx, user1, user2)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *RoleServiceTestSuite) TestBootstrap_OnlySeedsOnce() {
	suite.mockRepo.On("InitializeOwner", suite.ctx, owner, suite.now).Return(true, nil).Once()
	suite.mockRepo.On("InitializeOwner", suite.ctx, owner, suite.now).Return(false, nil).Once()
	suite.mockPublisher.On("Publish", suite.ctx, mock.AnythingOfType("domain.Event")).Once()

	suite.Require().NoError(suite.service.Bootstrap(suite.ctx, owner))
	suite.Require().NoError(suite.service.Bootstrap(suite.ctx, owner))

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertNumberOfCalls(suite.T(), "Publish", 1)
}

func (suite *RoleServiceTestSuite) TestBootstrap_EmptyCreator() {
	err := suite.service.Bootstrap(suite.ctx, "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---

func TestRoleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RoleServiceTestSuite))
}

func TestRoleService_OwnerIsNotAdmin(t *testing.T) {
	ctx := context.Background()
	container, err := newBootstrappedContainer(ctx, nil)
	if !assert.NoError(t, err) {
		return
	}

	// The owner starts as ADMIN, but ownership and role are independent
	assert.NoError(t, container.Role.RevokeRole(ctx, admin, owner))
	role, err := container.Role.RoleOf(ctx, owner)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleNone, role)

	err = container.Role.GrantRole(ctx, owner, user1, domain.RoleAuditor)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "owner without ADMIN cannot grant")

	assert.NoError(t, container.Role.TransferOwnership(ctx, owner, user1))
	newOwner, err := container.Role.Owner(ctx)
	assert.NoError(t, err)
	assert.Equal(t, user1, newOwner)

	role, _ = container.Role.RoleOf(ctx, user1)
	assert.Equal(t, domain.RoleNone, role, "ownership transfer does not grant a role")
}

func TestRoleService_GrantIsIdempotentOverwrite(t *testing.T) {
	ctx := context.Background()
	container, err := newBootstrappedContainer(ctx, nil)
	if !assert.NoError(t, err) {
		return
	}

	assert.NoError(t, container.Role.GrantRole(ctx, admin, user1, domain.RoleAuditor))
	assert.NoError(t, container.Role.GrantRole(ctx, admin, user1, domain.RoleAuditor))
	assert.NoError(t, container.Role.GrantRole(ctx, admin, user1, domain.RoleAccountant))

	role, _ := container.Role.RoleOf(ctx, user1)
	assert.Equal(t, domain.RoleAccountant, role)
}
