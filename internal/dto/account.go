package dto

import (
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create the caller's account.
type CreateAccountRequest struct {
	Name        string             `json:"name" binding:"required,notblank,max=128"`
	AccountType domain.AccountType `json:"accountType" binding:"required,account_type"`
}

// UpdateAccountRequest replaces name and type of the caller's account.
type UpdateAccountRequest struct {
	Name        string             `json:"name" binding:"required,notblank,max=128"`
	AccountType domain.AccountType `json:"accountType" binding:"required,account_type"`
}

// ChangeAccountStatusRequest toggles the active flag.
// A pointer so that an explicit false passes the required check.
type ChangeAccountStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      int64              `json:"accountID"`
	OwnerPrincipal domain.Principal   `json:"ownerPrincipal"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      domain.Principal   `json:"createdBy"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy  domain.Principal   `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		OwnerPrincipal: acc.OwnerPrincipal,
		Name:           acc.Name,
		AccountType:    acc.AccountType,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID int64 `json:"accountID"`
	Balance   int64 `json:"balance"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=0"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
