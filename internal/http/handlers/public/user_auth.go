package public

import (
	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/i18n"

	"github.com/gin-gonic/gin"
)

// SessionTokenHeader 会话令牌响应头
const SessionTokenHeader = "X-Session-Token"

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	NamaLengkap string `json:"nama_lengkap" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// Login 用户登录，换发会话与令牌；访客购物车迁到新会话
func (h *Handler) Login(c *gin.Context) {
	sid, ok := getSessionID(c)
	if !ok {
		return
	}
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.login_invalid", nil)
		return
	}

	outcome, err := h.auth.Login(c.Request.Context(), sid, req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err, loginErrorRules, "error.login_invalid")
		return
	}
	c.Header(SessionTokenHeader, outcome.Token)
	response.Success(c, gin.H{
		"token":      outcome.Token,
		"session_id": outcome.SessionID,
		"user":       outcome.Record,
	})
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.register_invalid", nil)
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.NamaLengkap, req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err, registerErrorRules, "error.register_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.register_success"), gin.H{
		"user_id":      user.UserID,
		"nama_lengkap": user.NamaLengkap,
		"email":        user.Email,
	})
}

// Logout 登出，购物车随会话事件一并丢弃
func (h *Handler) Logout(c *gin.Context) {
	sid, ok := getSessionID(c)
	if !ok {
		return
	}
	if err := h.auth.Logout(c.Request.Context(), sid); err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.logout_success"), nil)
}

// Me 当前会话信息
func (h *Handler) Me(c *gin.Context) {
	sid, ok := getSessionID(c)
	if !ok {
		return
	}
	record := getSessionRecord(c)
	response.Success(c, gin.H{
		"session_id":    sid,
		"authenticated": record != nil,
		"user":          record,
	})
}
