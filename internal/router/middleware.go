package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/kantin-next/internal/authz"
	"github.com/kantin-next/internal/config"
	handlershared "github.com/kantin-next/internal/http/handlers/shared"
	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/i18n"
	"github.com/kantin-next/internal/logger"
	"github.com/kantin-next/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = handlershared.ContextKeyRequestID
const requestIDHeader = "X-Request-ID"
const defaultSessionHeader = "X-Session-Token"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Language",
			"Authorization",
			"X-Session-Token",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")
	exposedHeader := strings.Join(cfg.ExposedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if exposedHeader != "" {
			c.Writer.Header().Set("Access-Control-Expose-Headers", exposedHeader)
		}
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", getRequestID(c),
			"session_id", c.GetString(handlershared.ContextKeySessionID),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// SessionMiddleware 解析会话令牌，缺失或无效时签发访客会话
// 新令牌通过响应头返回给客户端
func SessionMiddleware(sessions *session.Manager, headerName string) gin.HandlerFunc {
	headerName = strings.TrimSpace(headerName)
	if headerName == "" {
		headerName = defaultSessionHeader
	}
	return func(c *gin.Context) {
		if sessions == nil {
			logger.Errorw("session_manager_unavailable")
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.internal_error"))
			c.Abort()
			return
		}

		sessionID := ""
		if token := extractSessionToken(c, headerName); token != "" {
			resolved, err := sessions.Resolve(token)
			if err == nil {
				sessionID = resolved
			} else {
				logger.Debugw("session_token_rejected", "error", err)
			}
		}
		if sessionID == "" {
			guestID, token, err := sessions.NewGuest()
			if err != nil {
				logger.Errorw("session_guest_issue_failed", "error", err)
				response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.internal_error"))
				c.Abort()
				return
			}
			sessionID = guestID
			c.Writer.Header().Set(headerName, token)
		}
		c.Set(handlershared.ContextKeySessionID, sessionID)

		record, err := sessions.Current(c.Request.Context(), sessionID)
		if err != nil {
			logger.Warnw("session_record_load_failed",
				"session_id", sessionID,
				"error", err,
			)
		}
		if record != nil {
			c.Set(handlershared.ContextKeySessionRecord, record)
			c.Set(handlershared.ContextKeyUserID, record.UserID)
			c.Set(handlershared.ContextKeyUserRole, record.Role)
		}
		c.Next()
	}
}

func extractSessionToken(c *gin.Context, headerName string) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(c.GetHeader(headerName))
}

// RequireAuthMiddleware 要求会话已登录
func RequireAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var record *session.Record
		if value, ok := c.Get(handlershared.ContextKeySessionRecord); ok {
			record, _ = value.(*session.Record)
		}
		if err := session.RequireAuth(record); err != nil {
			response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), "error.unauthorized"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RBACMiddleware 管理端 RBAC 鉴权中间件
func RBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("rbac_service_unavailable")
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}

		userID := c.GetUint(handlershared.ContextKeyUserID)
		if userID == 0 {
			response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), "error.unauthorized"))
			c.Abort()
			return
		}
		role := c.GetString(handlershared.ContextKeyUserRole)

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.Authorize(userID, role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("rbac_enforce_failed",
				"user_id", userID,
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("rbac_permission_denied",
				"user_id", userID,
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}

		c.Next()
	}
}
