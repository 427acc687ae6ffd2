package memory

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/apperrors"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestRoleRepository_InitializeOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewRoleRepository()

	_, err := repo.FindOwner(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	seeded, err := repo.InitializeOwner(ctx, "alice", time.Now())
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = repo.InitializeOwner(ctx, "mallory", time.Now())
	require.NoError(t, err)
	assert.False(t, seeded, "second bootstrap must not replace the owner")

	owner, err := repo.FindOwner(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal("alice"), owner)

	role, err := repo.FindRole(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestRoleRepository_SaveRole(t *testing.T) {
	ctx := context.Background()
	repo := NewRoleRepository()

	role, err := repo.FindRole(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleNone, role)

	require.NoError(t, repo.SaveRole(ctx, "bob", domain.RoleAccountant, "alice", time.Now()))
	role, _ = repo.FindRole(ctx, "bob")
	assert.Equal(t, domain.RoleAccountant, role)

	require.NoError(t, repo.SaveRole(ctx, "bob", domain.RoleNone, "alice", time.Now()))
	role, _ = repo.FindRole(ctx, "bob")
	assert.Equal(t, domain.RoleNone, role)
}

func TestAccountRepository_SaveAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	first, err := repo.SaveAccount(ctx, domain.Account{OwnerPrincipal: "alice", Name: "Alice", AccountType: domain.Personal, IsActive: true})
	require.NoError(t, err)
	second, err := repo.SaveAccount(ctx, domain.Account{OwnerPrincipal: "bob", Name: "Bob", AccountType: domain.Business, IsActive: true})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.AccountID)
	assert.Equal(t, int64(2), second.AccountID)

	_, err = repo.SaveAccount(ctx, domain.Account{OwnerPrincipal: "alice", Name: "Again"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	got, err := repo.FindAccountByPrincipal(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)

	_, err = repo.FindAccountByID(ctx, 0)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.FindAccountByID(ctx, 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAccountRepository_UpdatesDoNotLeakReferences(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()
	saved, err := repo.SaveAccount(ctx, domain.Account{OwnerPrincipal: "alice", Name: "Alice", AccountType: domain.Personal, IsActive: true})
	require.NoError(t, err)

	found, _ := repo.FindAccountByID(ctx, saved.AccountID)
	found.Name = "mutated outside"

	again, _ := repo.FindAccountByID(ctx, saved.AccountID)
	assert.Equal(t, "Alice", again.Name)

	require.NoError(t, repo.UpdateAccountStatus(ctx, saved.AccountID, false, "admin", time.Now()))
	again, _ = repo.FindAccountByID(ctx, saved.AccountID)
	assert.False(t, again.IsActive)
	assert.Equal(t, domain.Principal("admin"), again.LastUpdatedBy)

	err = repo.UpdateAccountStatus(ctx, 42, true, "admin", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAccountRepository_ListAccounts(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()
	for _, p := range []domain.Principal{"a", "b", "c"} {
		_, err := repo.SaveAccount(ctx, domain.Account{OwnerPrincipal: p, Name: string(p), AccountType: domain.Personal})
		require.NoError(t, err)
	}

	page, err := repo.ListAccounts(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(2), page[0].AccountID)
	assert.Equal(t, int64(3), page[1].AccountID)

	empty, err := repo.ListAccounts(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLedgerRepository_AppendTransaction(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository()

	deposit, balances, err := repo.AppendTransaction(ctx, domain.TransactionRecord{
		TransactionType: domain.Deposit,
		ToAccountID:     int64Ptr(1),
		Amount:          1000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deposit.TransactionID)
	assert.Equal(t, map[int64]int64{1: 1000}, balances)

	transfer, balances, err := repo.AppendTransaction(ctx, domain.TransactionRecord{
		TransactionType: domain.Transfer,
		FromAccountID:   int64Ptr(1),
		ToAccountID:     int64Ptr(2),
		Amount:          600,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), transfer.TransactionID)
	assert.Equal(t, map[int64]int64{1: 400, 2: 600}, balances)

	_, _, err = repo.AppendTransaction(ctx, domain.TransactionRecord{
		TransactionType: domain.Withdrawal,
		FromAccountID:   int64Ptr(2),
		Amount:          601,
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	count, _ := repo.CountTransactions(ctx)
	assert.Equal(t, int64(2), count, "rejected append must leave the log untouched")
	balance, _ := repo.FindBalance(ctx, 2)
	assert.Equal(t, int64(600), balance)
}

func TestLedgerRepository_AppendTransactionRejectsOverflow(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository()

	_, _, err := repo.AppendTransaction(ctx, domain.TransactionRecord{TransactionType: domain.Deposit, ToAccountID: int64Ptr(1), Amount: math.MaxInt64})
	require.NoError(t, err)
	_, _, err = repo.AppendTransaction(ctx, domain.TransactionRecord{TransactionType: domain.Deposit, ToAccountID: int64Ptr(2), Amount: 5})
	require.NoError(t, err)

	_, _, err = repo.AppendTransaction(ctx, domain.TransactionRecord{
		TransactionType: domain.Transfer,
		FromAccountID:   int64Ptr(2),
		ToAccountID:     int64Ptr(1),
		Amount:          5,
	})
	assert.ErrorIs(t, err, apperrors.ErrBalanceOverflow)
	assert.NotErrorIs(t, err, apperrors.ErrInsufficientBalance)

	count, _ := repo.CountTransactions(ctx)
	assert.Equal(t, int64(2), count)
	balance, _ := repo.FindBalance(ctx, 2)
	assert.Equal(t, int64(5), balance)
	balance, _ = repo.FindBalance(ctx, 1)
	assert.Equal(t, int64(math.MaxInt64), balance)
}

func TestLedgerRepository_ListTransactions(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository()
	for _, to := range []int64{1, 2, 1, 3} {
		_, _, err := repo.AppendTransaction(ctx, domain.TransactionRecord{TransactionType: domain.Deposit, ToAccountID: int64Ptr(to), Amount: 10})
		require.NoError(t, err)
	}

	all, err := repo.ListTransactions(ctx, domain.TransactionFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	page, err := repo.ListTransactions(ctx, domain.TransactionFilter{}, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(3), page[0].TransactionID)

	forOne, err := repo.ListTransactions(ctx, domain.TransactionFilter{AccountID: int64Ptr(1)}, 0, 10)
	require.NoError(t, err)
	require.Len(t, forOne, 2)
	assert.Equal(t, int64(1), forOne[0].TransactionID)
	assert.Equal(t, int64(3), forOne[1].TransactionID)

	_, err = repo.FindTransactionByID(ctx, 5)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLedgerRepository_ConcurrentAppendsKeepBalances(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = repo.AppendTransaction(ctx, domain.TransactionRecord{TransactionType: domain.Deposit, ToAccountID: int64Ptr(1), Amount: 2})
		}()
	}
	wg.Wait()

	balance, _ := repo.FindBalance(ctx, 1)
	count, _ := repo.CountTransactions(ctx)
	assert.Equal(t, int64(100), balance)
	assert.Equal(t, int64(50), count)
}
