package admin

import (
	"errors"

	"github.com/kantin-next/internal/authz"
	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/logger"

	"github.com/gin-gonic/gin"
)

type assignStaffRolesRequest struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 当前管理员的权限快照
func (h *Handler) GetAuthzMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	sessionRole := currentRole(c)

	staffRoles, err := h.authz.StaffRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	policies, err := h.authz.EffectivePolicies(userID, sessionRole)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	response.Success(c, gin.H{
		"user_id":      userID,
		"backend_role": sessionRole,
		"staff_roles":  staffRoles,
		"policies":     policies,
	})
}

// ListAuthzRoles 预置角色阶梯（只读）
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	response.Success(c, authz.RoleSeeds())
}

// GetAuthzUserRoles 用户的员工角色
func (h *Handler) GetAuthzUserRoles(c *gin.Context) {
	userID, ok := parseUintParam(c, "id", "error.authz_invalid")
	if !ok {
		return
	}
	roles, err := h.authz.StaffRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, gin.H{"user_id": userID, "roles": roles})
}

// SetAuthzUserRoles 覆盖用户的员工角色
func (h *Handler) SetAuthzUserRoles(c *gin.Context) {
	userID, ok := parseUintParam(c, "id", "error.authz_invalid")
	if !ok {
		return
	}
	var req assignStaffRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	roles, err := h.authz.AssignStaffRoles(userID, req.Roles)
	switch {
	case errors.Is(err, authz.ErrUnknownRole), errors.Is(err, authz.ErrRoleNotAssignable):
		requestLog(c).Warnw("admin_staff_roles_rejected", "target_user_id", userID, "error", err)
		respondError(c, response.CodeBadRequest, "error.authz_invalid", nil)
		return
	case err != nil:
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	logger.Infow("admin_staff_roles_updated",
		"operator_user_id", c.GetUint("user_id"),
		"target_user_id", userID,
		"roles", roles,
		"request_id", currentRequestID(c),
	)
	response.Success(c, gin.H{"user_id": userID, "roles": roles})
}
