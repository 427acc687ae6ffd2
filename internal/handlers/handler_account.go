package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/permissioned_ledger/internal/core/ports/services"
	"github.com/SscSPs/permissioned_ledger/internal/dto"
	"github.com/SscSPs/permissioned_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerReaderSvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ls portssvc.LedgerReaderSvc) *accountHandler {
	return &accountHandler{
		accountService: as,
		ledgerService:  ls,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, ledgerService portssvc.LedgerReaderSvc, mutating ...gin.HandlerFunc) {
	h := newAccountHandler(accountService, ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccountByID)
		accounts.GET("/:accountID/balance", h.getBalance)

		writes := accounts.Group("", mutating...)
		writes.POST("", h.createAccount)
		writes.PUT("/:accountID/status", h.changeAccountStatus)
	}

	me := rg.Group("/me")
	{
		me.GET("/account", h.getMyAccount)
		me.Group("", mutating...).PUT("/account", h.updateMyAccount)
	}

	rg.GET("/principals/:principal/account", h.getAccountOfPrincipal)
}

// createAccount godoc
// @Summary Create an account
// @Description Creates the single account of the calling principal
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Caller already has an account"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create account", slog.String("account_name", req.Name), slog.String("account_type", string(req.AccountType)))

	account, err := h.accountService.CreateAccount(c.Request.Context(), caller, req.Name, req.AccountType)
	if err != nil {
		respondWithError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.Int64("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccountByID godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid account ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccountByID(c *gin.Context) {
	if _, ok := callerFromContext(c); !ok {
		return
	}
	accountID, ok := int64Param(c, "accountID")
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := callerFromContext(c); !ok {
		return
	}

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err, "Failed to list accounts")
		return
	}

	logger.Debug("Accounts listed", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// changeAccountStatus godoc
// @Summary Activate or deactivate an account
// @Description Toggles the active flag of an account. Requires ADMIN.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Param   status body dto.ChangeAccountStatusRequest true "New status"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to change account status"
// @Security BearerAuth
// @Router /accounts/{accountID}/status [put]
func (h *accountHandler) changeAccountStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	accountID, ok := int64Param(c, "accountID")
	if !ok {
		return
	}

	var req dto.ChangeAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeAccountStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.ChangeAccountStatus(c.Request.Context(), caller, accountID, *req.IsActive)
	if err != nil {
		respondWithError(c, err, "Failed to change account status")
		return
	}

	logger.Info("Account status changed", slog.Int64("account_id", accountID), slog.Bool("is_active", account.IsActive))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getBalance godoc
// @Summary Get the balance of an account
// @Tags accounts
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Invalid account ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve balance"
// @Security BearerAuth
// @Router /accounts/{accountID}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	if _, ok := callerFromContext(c); !ok {
		return
	}
	accountID, ok := int64Param(c, "accountID")
	if !ok {
		return
	}

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountID: accountID, Balance: balance})
}

// getMyAccount godoc
// @Summary Get the caller's account
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Caller has no account"
// @Security BearerAuth
// @Router /me/account [get]
func (h *accountHandler) getMyAccount(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	h.respondWithAccountOf(c, caller)
}

// getAccountOfPrincipal godoc
// @Summary Get the account owned by a principal
// @Tags accounts
// @Produce  json
// @Param   principal path string true "Principal"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Principal has no account"
// @Security BearerAuth
// @Router /principals/{principal}/account [get]
func (h *accountHandler) getAccountOfPrincipal(c *gin.Context) {
	if _, ok := callerFromContext(c); !ok {
		return
	}
	h.respondWithAccountOf(c, domain.Principal(c.Param("principal")))
}

func (h *accountHandler) respondWithAccountOf(c *gin.Context, principal domain.Principal) {
	account, err := h.accountService.GetAccount(c.Request.Context(), principal)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateMyAccount godoc
// @Summary Update the caller's account
// @Description Replaces name and type of the account owned by the caller
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.UpdateAccountRequest true "New account details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller owns no account"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /me/account [put]
func (h *accountHandler) updateMyAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), caller, req.Name, req.AccountType)
	if err != nil {
		respondWithError(c, err, "Failed to update account")
		return
	}

	logger.Info("Account updated", slog.Int64("account_id", account.AccountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
