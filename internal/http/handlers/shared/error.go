package shared

import (
	"errors"

	"github.com/kantin-next/internal/backend"
	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/i18n"
	"github.com/kantin-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(ContextKeyRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 按文案 key 返回本地化错误
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, i18n.T(i18n.ResolveLocale(c), key), err)
}

// RespondErrorWithMsg 返回给定文案；err 只进日志，不暴露给客户端
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		log := RequestLog(c)
		if code >= response.CodeInternal {
			log.Errorw("handler_error", "code", code, "message", msg, "error", err)
		} else {
			log.Warnw("handler_error", "code", code, "message", msg, "error", err)
		}
	}
	response.Error(c, code, msg)
}

// RespondBackendError 后端拒绝时原样返回后端文案，网络故障返回 502，其余使用兜底文案。
func RespondBackendError(c *gin.Context, err error, fallbackKey string) {
	if msg := backend.MessageOf(err); msg != "" {
		RequestLog(c).Warnw("backend_request_rejected", "message", msg)
		RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	if errors.Is(err, backend.ErrRequestFailed) {
		RespondError(c, response.CodeBadGateway, "error.backend_unavailable", err)
		return
	}
	RespondError(c, response.CodeInternal, fallbackKey, err)
}
