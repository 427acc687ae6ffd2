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

// ledgerHandler handles HTTP requests for recording and auditing transactions.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers the transaction log and audit routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, mutating ...gin.HandlerFunc) {
	h := newLedgerHandler(ledgerService)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.Group("", mutating...).POST("", h.recordTransaction)
	}

	rg.GET("/ledger/audit", h.auditBalances)
}

// recordTransaction godoc
// @Summary Record a transaction
// @Description Applies a DEPOSIT, WITHDRAWAL or TRANSFER. Requires ACCOUNTANT or ADMIN.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.RecordTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller may not record transactions"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Invalid amount, same account, inactive account, insufficient balance or balance overflow"
// @Failure 500 {object} map[string]string "Failed to record transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *ledgerHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}

	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	record, err := h.ledgerService.RecordTransaction(c.Request.Context(), caller, req.ToDomain())
	if err != nil {
		respondWithError(c, err, "Failed to record transaction")
		return
	}

	logger.Info("Transaction recorded",
		slog.Int64("transaction_id", record.TransactionID),
		slog.String("transaction_type", string(record.TransactionType)),
		slog.Int64("amount", record.Amount))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(record))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   transactionID path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid transaction ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *ledgerHandler) getTransaction(c *gin.Context) {
	if _, ok := callerFromContext(c); !ok {
		return
	}
	transactionID, ok := int64Param(c, "transactionID")
	if !ok {
		return
	}

	record, err := h.ledgerService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(record))
}

// listTransactions godoc
// @Summary Read the audit trail
// @Description Lists transactions in recording order. Requires AUDITOR, ACCOUNTANT or ADMIN.
// @Tags transactions
// @Produce  json
// @Param   accountID query int false "Only transactions touching this account"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller may not read the audit trail"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.TransactionFilter{AccountID: params.AccountID}
	records, nextToken, err := h.ledgerService.ListTransactions(c.Request.Context(), caller, filter, params.Limit, params.NextToken)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(records),
		NextToken:    nextToken,
	})
}

// auditBalances godoc
// @Summary Reconcile balances with the transaction log
// @Description Recomputes every balance from the log and reports mismatches. Requires AUDITOR or ADMIN.
// @Tags transactions
// @Produce  json
// @Success 200 {object} dto.AuditReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller may not audit balances"
// @Failure 500 {object} map[string]string "Failed to audit balances"
// @Security BearerAuth
// @Router /ledger/audit [get]
func (h *ledgerHandler) auditBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}

	report, err := h.ledgerService.AuditBalances(c.Request.Context(), caller)
	if err != nil {
		respondWithError(c, err, "Failed to audit balances")
		return
	}

	if !report.Consistent() {
		logger.Error("Balance audit found mismatches", slog.Int("mismatches", len(report.Mismatches)))
	}
	c.JSON(http.StatusOK, dto.ToAuditReportResponse(report))
}
