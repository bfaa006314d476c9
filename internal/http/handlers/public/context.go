package public

import (
	handlershared "github.com/kantin-next/internal/http/handlers/shared"
	"github.com/kantin-next/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

func respondBackendError(c *gin.Context, err error, fallbackKey string) {
	handlershared.RespondBackendError(c, err, fallbackKey)
}

func getSessionID(c *gin.Context) (string, bool) {
	return handlershared.GetSessionID(c)
}

func getSessionRecord(c *gin.Context) *session.Record {
	return handlershared.GetSessionRecord(c)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetUserID(c)
}

func parseUintParam(c *gin.Context, name, invalidKey string) (uint, bool) {
	return handlershared.ParseUintParam(c, name, invalidKey)
}
