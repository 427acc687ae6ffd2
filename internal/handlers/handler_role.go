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

// roleHandler handles HTTP requests related to roles and ownership.
type roleHandler struct {
	roleService portssvc.RoleSvcFacade
}

// newRoleHandler creates a new roleHandler.
func newRoleHandler(rs portssvc.RoleSvcFacade) *roleHandler {
	return &roleHandler{roleService: rs}
}

// RegisterRoleRoutes registers the role registry routes. Mutating routes go
// through the optional extra handlers (rate limiting).
func RegisterRoleRoutes(rg *gin.RouterGroup, roleService portssvc.RoleSvcFacade, mutating ...gin.HandlerFunc) {
	h := newRoleHandler(roleService)

	roles := rg.Group("/roles")
	{
		roles.GET("/:principal", h.getRole)

		writes := roles.Group("", mutating...)
		writes.PUT("/:principal", h.grantRole)
		writes.DELETE("/:principal", h.revokeRole)
	}

	ownership := rg.Group("/ownership")
	{
		ownership.GET("", h.getOwner)
		ownership.Group("", mutating...).PUT("", h.transferOwnership)
	}
}

// getRole godoc
// @Summary Get the role of a principal
// @Description Returns the role a principal holds; NONE for unknown principals
// @Tags roles
// @Produce  json
// @Param   principal path string true "Principal"
// @Success 200 {object} dto.RoleResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve role"
// @Security BearerAuth
// @Router /roles/{principal} [get]
func (h *roleHandler) getRole(c *gin.Context) {
	if _, ok := callerFromContext(c); !ok {
		return
	}
	target := domain.Principal(c.Param("principal"))

	role, err := h.roleService.RoleOf(c.Request.Context(), target)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve role")
		return
	}
	c.JSON(http.StatusOK, dto.RoleResponse{Principal: target, Role: role})
}

// grantRole godoc
// @Summary Grant a role
// @Description Sets the role of a principal, replacing any previous one. Requires ADMIN.
// @Tags roles
// @Accept  json
// @Produce  json
// @Param   principal path string true "Principal"
// @Param   role body dto.GrantRoleRequest true "Role to grant"
// @Success 200 {object} dto.RoleResponse
// @Failure 400 {object} map[string]string "Invalid input format or unknown role"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 500 {object} map[string]string "Failed to grant role"
// @Security BearerAuth
// @Router /roles/{principal} [put]
func (h *roleHandler) grantRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}

	var req dto.GrantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GrantRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	target := domain.Principal(c.Param("principal"))
	if err := h.roleService.GrantRole(c.Request.Context(), caller, target, req.Role); err != nil {
		respondWithError(c, err, "Failed to grant role")
		return
	}

	logger.Info("Role granted", slog.String("target", string(target)), slog.String("role", string(req.Role)))
	c.JSON(http.StatusOK, dto.RoleResponse{Principal: target, Role: req.Role})
}

// revokeRole godoc
// @Summary Revoke a role
// @Description Resets the role of a principal to NONE. Requires ADMIN.
// @Tags roles
// @Param   principal path string true "Principal"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 500 {object} map[string]string "Failed to revoke role"
// @Security BearerAuth
// @Router /roles/{principal} [delete]
func (h *roleHandler) revokeRole(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}

	target := domain.Principal(c.Param("principal"))
	if err := h.roleService.RevokeRole(c.Request.Context(), caller, target); err != nil {
		respondWithError(c, err, "Failed to revoke role")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Role revoked", slog.String("target", string(target)))
	c.Status(http.StatusNoContent)
}

// getOwner godoc
// @Summary Get the ledger owner
// @Tags roles
// @Produce  json
// @Success 200 {object} dto.OwnerResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger not bootstrapped"
// @Security BearerAuth
// @Router /ownership [get]
func (h *roleHandler) getOwner(c *gin.Context) {
	if _, ok := callerFromContext(c); !ok {
		return
	}

	owner, err := h.roleService.Owner(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to retrieve owner")
		return
	}
	c.JSON(http.StatusOK, dto.OwnerResponse{Owner: owner})
}

// transferOwnership godoc
// @Summary Transfer ledger ownership
// @Description Replaces the owner. Only the current owner may call it; roles are not changed.
// @Tags roles
// @Accept  json
// @Produce  json
// @Param   ownership body dto.TransferOwnershipRequest true "New owner"
// @Success 200 {object} dto.OwnerResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not the owner"
// @Failure 500 {object} map[string]string "Failed to transfer ownership"
// @Security BearerAuth
// @Router /ownership [put]
func (h *roleHandler) transferOwnership(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}

	var req dto.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransferOwnership", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.roleService.TransferOwnership(c.Request.Context(), caller, req.NewOwner); err != nil {
		respondWithError(c, err, "Failed to transfer ownership")
		return
	}

	logger.Info("Ownership transferred", slog.String("new_owner", string(req.NewOwner)))
	c.JSON(http.StatusOK, dto.OwnerResponse{Owner: req.NewOwner})
}
