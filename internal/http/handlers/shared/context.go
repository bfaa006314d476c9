package shared

import (
	"strconv"
	"strings"

	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/session"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextKeyRequestID     = "request_id"
	ContextKeySessionID     = "session_id"
	ContextKeySessionRecord = "session_record"
	ContextKeyUserID        = "user_id"
	ContextKeyUserRole      = "user_role"
)

// GetUserID 读取登录用户 ID；访客或 ID 为 0 时返回未登录
func GetUserID(c *gin.Context) (uint, bool) {
	if id := c.GetUint(ContextKeyUserID); id != 0 {
		return id, true
	}
	RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
	return 0, false
}

// GetSessionID 读取会话 ID，缺失时返回会话无效。
func GetSessionID(c *gin.Context) (string, bool) {
	if value, ok := c.Get(ContextKeySessionID); ok {
		if sid, ok := value.(string); ok && strings.TrimSpace(sid) != "" {
			return sid, true
		}
	}
	RespondError(c, response.CodeUnauthorized, "error.session_invalid", nil)
	return "", false
}

// GetSessionRecord 读取登录记录，访客返回 nil。
func GetSessionRecord(c *gin.Context) *session.Record {
	value, ok := c.Get(ContextKeySessionRecord)
	if !ok {
		return nil
	}
	record, _ := value.(*session.Record)
	return record
}

// ParseUintParam 解析路径参数中的正整数 ID。
func ParseUintParam(c *gin.Context, name, invalidKey string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return uint(id), true
}
