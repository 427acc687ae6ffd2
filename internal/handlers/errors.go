package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/permissioned_ledger/internal/apperrors"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	"github.com/SscSPs/permissioned_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps a service error onto its HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInsufficientBalance),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrBalanceOverflow),
		errors.Is(err, apperrors.ErrSameAccount),
		errors.Is(err, apperrors.ErrAccountInactive):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the JSON error body for err. Server errors are
// logged and replaced by fallbackMsg so internals never leak to the client.
func respondWithError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallbackMsg})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// callerFromContext returns the authenticated principal or aborts with 401.
func callerFromContext(c *gin.Context) (domain.Principal, bool) {
	caller, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Principal not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return caller, true
}

// int64Param parses a positive numeric path parameter or aborts with 400.
func int64Param(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid path parameter", slog.String(name, raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}
