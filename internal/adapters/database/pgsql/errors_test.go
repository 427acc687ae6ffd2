package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/permissioned_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateLedgerError(t *testing.T) {
	checkViolation := fmt.Errorf("failed to update balance: %w", &pgconn.PgError{Code: pgCheckViolation})
	assert.ErrorIs(t, translateLedgerError(checkViolation), apperrors.ErrInsufficientBalance)

	fkViolation := &pgconn.PgError{Code: pgForeignKeyViolation}
	assert.ErrorIs(t, translateLedgerError(fkViolation), apperrors.ErrAccountNotFound)

	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateLedgerError(plain))
}

func TestNotFoundOr(t *testing.T) {
	assert.ErrorIs(t, notFoundOr(pgx.ErrNoRows, "account 1"), apperrors.ErrNotFound)

	other := notFoundOr(assert.AnError, "account 1")
	assert.ErrorIs(t, other, assert.AnError)
	assert.NotErrorIs(t, other, apperrors.ErrNotFound)
}

func TestPgErrorCode(t *testing.T) {
	assert.Equal(t, pgUniqueViolation, pgErrorCode(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgUniqueViolation})))
	assert.Equal(t, "", pgErrorCode(assert.AnError))
}
