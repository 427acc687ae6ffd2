package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/apperrors"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/permissioned_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/permissioned_ledger/internal/models"
	"github.com/SscSPs/permissioned_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, owner_principal, name, account_type, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) findOne(ctx context.Context, what string, query string, args ...any) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	modelAcc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, notFoundOr(err, what)
	}
	account := mapping.ToDomainAccount(modelAcc)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	return r.findOne(ctx, fmt.Sprintf("account %d", accountID),
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`, accountID)
}

func (r *PgxAccountRepository) FindAccountByPrincipal(ctx context.Context, principal domain.Principal) (*domain.Account, error) {
	return r.findOne(ctx, fmt.Sprintf("account of %s", principal),
		`SELECT `+accountColumns+` FROM accounts WHERE owner_principal = $1`, string(principal))
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY account_id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	modelAccs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(modelAccs), nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (owner_principal, name, account_type, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING account_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		modelAcc.OwnerPrincipal,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	).Scan(&account.AccountID)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, fmt.Errorf("%w: principal %s already owns an account", apperrors.ErrAlreadyExists, account.OwnerPrincipal)
		}
		return nil, fmt.Errorf("failed to save account of %s: %w", account.OwnerPrincipal, err)
	}
	return &account, nil
}

func (r *PgxAccountRepository) UpdateAccountDetails(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, account_type = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.Name,
		string(account.AccountType),
		account.LastUpdatedAt,
		string(account.LastUpdatedBy),
		account.AccountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %d: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, account.AccountID)
	}
	return nil
}

func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, accountID int64, active bool, actor domain.Principal, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, active, now, string(actor), accountID)
	if err != nil {
		return fmt.Errorf("failed to update status of account %d: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	return nil
}
