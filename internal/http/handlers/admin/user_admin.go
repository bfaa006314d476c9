package admin

import (
	"github.com/kantin-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListUsers 用户列表（来自食堂后端）
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.backend.ListUsers(c.Request.Context())
	if err != nil {
		respondBackendError(c, err, "error.user_fetch_failed")
		return
	}
	response.Success(c, gin.H{"items": users})
}
