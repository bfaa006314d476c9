package admin

import (
	"errors"

	handlershared "github.com/kantin-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondBackendError(c *gin.Context, err error, fallbackKey string) {
	handlershared.RespondBackendError(c, err, fallbackKey)
}

// respondValidationOrBackendError 本地校验错误返回 400，其余按后端错误处理
func respondValidationOrBackendError(c *gin.Context, err error, target error, code int, key, fallbackKey string) {
	if errors.Is(err, target) {
		respondError(c, code, key, nil)
		return
	}
	respondBackendError(c, err, fallbackKey)
}
