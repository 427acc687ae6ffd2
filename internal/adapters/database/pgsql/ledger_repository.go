package pgsql

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/SscSPs/permissioned_ledger/internal/apperrors"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/permissioned_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/permissioned_ledger/internal/models"
	"github.com/SscSPs/permissioned_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, transaction_type, from_account_id, to_account_id, amount, description, recorded_at, recorded_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for balances and the transaction log.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) FindBalance(ctx context.Context, accountID int64) (int64, error) {
	var balance int64
	err := r.Pool.QueryRow(ctx, `SELECT balance FROM account_balances WHERE account_id = $1`, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to find balance of account %d: %w", accountID, err)
	}
	return balance, nil
}

func (r *PgxLedgerRepository) ListBalances(ctx context.Context) (map[int64]int64, error) {
	rows, err := r.Pool.Query(ctx, `SELECT account_id, balance FROM account_balances`)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[int64]int64)
	for rows.Next() {
		var accountID, balance int64
		if err := rows.Scan(&accountID, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances[accountID] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balances: %w", err)
	}
	return balances, nil
}

func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.TransactionRecord, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+transactionColumns+` FROM ledger_transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %d: %w", transactionID, err)
	}
	modelTxn, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("transaction %d", transactionID))
	}
	record := mapping.ToDomainTransaction(modelTxn)
	return &record, nil
}

func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, afterID int64, limit int) ([]domain.TransactionRecord, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM ledger_transactions
		WHERE transaction_id > $1
		  AND ($2::BIGINT IS NULL OR from_account_id = $2 OR to_account_id = $2)
		ORDER BY transaction_id
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, afterID, filter.AccountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	modelTxns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

func (r *PgxLedgerRepository) CountTransactions(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// AppendTransaction locks the touched balance rows in account id order, applies the
// deltas and inserts the record in one database transaction.
func (r *PgxLedgerRepository) AppendTransaction(ctx context.Context, record domain.TransactionRecord) (*domain.TransactionRecord, map[int64]int64, error) {
	changes := record.BalanceChanges()
	accountIDs := make([]int64, 0, len(changes))
	for id := range changes {
		accountIDs = append(accountIDs, id)
	}
	sort.Slice(accountIDs, func(i, j int) bool { return accountIDs[i] < accountIDs[j] })

	resulting := make(map[int64]int64, len(changes))
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		for _, accountID := range accountIDs {
			next, err := applyDelta(ctx, tx, accountID, changes[accountID])
			if err != nil {
				return err
			}
			resulting[accountID] = next
		}

		modelTxn := mapping.ToModelTransaction(record)
		insert := `
			INSERT INTO ledger_transactions (transaction_type, from_account_id, to_account_id, amount, description, recorded_at, recorded_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING transaction_id;
		`
		return tx.QueryRow(ctx, insert,
			modelTxn.TransactionType,
			modelTxn.FromAccountID,
			modelTxn.ToAccountID,
			modelTxn.Amount,
			modelTxn.Description,
			modelTxn.RecordedAt,
			modelTxn.RecordedBy,
		).Scan(&record.TransactionID)
	})
	if err != nil {
		return nil, nil, translateLedgerError(err)
	}
	return &record, resulting, nil
}

func applyDelta(ctx context.Context, tx pgx.Tx, accountID int64, delta int64) (int64, error) {
	if _, err := tx.Exec(ctx,
		`INSERT INTO account_balances (account_id, balance) VALUES ($1, 0) ON CONFLICT (account_id) DO NOTHING`,
		accountID); err != nil {
		return 0, fmt.Errorf("failed to initialize balance of account %d: %w", accountID, err)
	}

	var current int64
	if err := tx.QueryRow(ctx,
		`SELECT balance FROM account_balances WHERE account_id = $1 FOR UPDATE`,
		accountID).Scan(&current); err != nil {
		return 0, fmt.Errorf("failed to lock balance of account %d: %w", accountID, err)
	}

	if delta > 0 && current > math.MaxInt64-delta {
		return 0, fmt.Errorf("%w: account %d holds %d, credit %d", apperrors.ErrBalanceOverflow, accountID, current, delta)
	}
	next := current + delta
	if next < 0 {
		return 0, fmt.Errorf("%w: account %d would hold %d", apperrors.ErrInsufficientBalance, accountID, next)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE account_balances SET balance = $1 WHERE account_id = $2`,
		next, accountID); err != nil {
		return 0, fmt.Errorf("failed to update balance of account %d: %w", accountID, err)
	}
	return next, nil
}

func translateLedgerError(err error) error {
	switch pgErrorCode(err) {
	case pgCheckViolation:
		return fmt.Errorf("%w: %v", apperrors.ErrInsufficientBalance, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %v", apperrors.ErrAccountNotFound, err)
	}
	return err
}
