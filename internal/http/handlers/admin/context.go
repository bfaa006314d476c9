package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/kantin-next/internal/http/handlers/shared"
	"github.com/kantin-next/internal/repository"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetUserID(c)
}

func currentRole(c *gin.Context) string {
	value, exists := c.Get(handlershared.ContextKeyUserRole)
	if !exists {
		return ""
	}
	if role, ok := value.(string); ok {
		return strings.TrimSpace(role)
	}
	return ""
}

func currentRequestID(c *gin.Context) string {
	value, exists := c.Get(handlershared.ContextKeyRequestID)
	if !exists {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return strings.TrimSpace(requestID)
	}
	return ""
}

func parseUintParam(c *gin.Context, name, invalidKey string) (uint, bool) {
	return handlershared.ParseUintParam(c, name, invalidKey)
}

// 非数字按缺省处理
func parsePage(c *gin.Context) repository.Page {
	number, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	return repository.NewPage(number, size)
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
