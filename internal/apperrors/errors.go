package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrAlreadyExists indicates that an attempt was made to create a resource that already exists.
var ErrAlreadyExists = errors.New("resource already exists")

// ErrUnauthorized indicates that a role, owner or account-ownership check failed.
var ErrUnauthorized = errors.New("caller is not authorized")

// ErrInvalidAmount indicates a non-positive transaction amount.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// ErrSameAccount indicates a transfer whose source and destination are the same account.
var ErrSameAccount = errors.New("cannot transfer to the same account")

// ErrInsufficientBalance indicates a withdrawal or transfer exceeding the available funds.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrBalanceOverflow indicates a credit that would push a balance past the largest representable amount.
var ErrBalanceOverflow = errors.New("balance would overflow")

// ErrAccountInactive indicates an operation targeting a disabled account.
var ErrAccountInactive = errors.New("account is inactive")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// ErrAccountNotFound is the ledger's flavour of ErrNotFound; errors.Is matches both.
var ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)

// ErrNotOwner is returned when the caller does not own the account it tries to modify.
var ErrNotOwner = fmt.Errorf("caller is not the account owner: %w", ErrUnauthorized)

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
