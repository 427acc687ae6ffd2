package middleware

import (
	"context"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// principalKey is the key used to store the authenticated principal in the request context.
const principalKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying the authenticated principal.
func WithPrincipal(ctx context.Context, principal domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// GetPrincipalFromContext retrieves the authenticated principal from the Gin request.
// It returns the principal and a boolean indicating if it was found.
func GetPrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	principal, ok := c.Request.Context().Value(principalKey).(domain.Principal)
	if !ok || principal.IsZero() {
		return "", false
	}
	return principal, true
}
