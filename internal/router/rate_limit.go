package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/i18n"
	"github.com/kantin-next/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// AttemptCounter 固定窗口计数：返回窗口内的累计次数与窗口剩余时间
type AttemptCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimitKeyFunc 生成限流 key，返回空串时退回客户端 IP
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则，WindowSeconds 或 MaxRequests 非正时不限流
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

// 首次计数时设置过期，窗口内只增不减
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("TTL", KEYS[1])}
`)

type redisCounter struct {
	client *redis.Client
}

// RedisCounter Redis 未启用时返回 nil，中间件随之放行
func RedisCounter(client *redis.Client) AttemptCounter {
	if client == nil {
		return nil
	}
	return &redisCounter{client: client}
}

func (r *redisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	values, err := fixedWindowScript.Run(ctx, r.client, []string{key}, int(window/time.Second)).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(values) != 2 {
		return 0, 0, fmt.Errorf("rate limit script returned %d values", len(values))
	}
	return values[0], time.Duration(values[1]) * time.Second, nil
}

// RateLimitMiddleware 超出次数返回 429，Retry-After 头与 data.retry_after 给出需等待的秒数
func RateLimitMiddleware(counter AttemptCounter, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	window := time.Duration(rule.WindowSeconds) * time.Second
	msgKey := strings.TrimSpace(rule.MessageKey)
	if msgKey == "" {
		msgKey = "error.too_many_requests"
	}
	return func(c *gin.Context) {
		if counter == nil || window <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}
		key := rule.key(c, keyFunc)
		count, remaining, err := counter.Hit(c.Request.Context(), key, window)
		if err != nil {
			logger.Errorw("rate_limit_counter_failed", "key", key, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.internal_error"))
			c.Abort()
			return
		}
		if count <= int64(rule.MaxRequests) {
			c.Next()
			return
		}

		// TTL 缺失（-1/-2）时按整个窗口计
		retryAfter := int(math.Ceil(remaining.Seconds()))
		if retryAfter < 1 {
			retryAfter = rule.WindowSeconds
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		response.ErrorWithData(c, response.CodeTooManyRequests, i18n.T(i18n.ResolveLocale(c), msgKey),
			gin.H{"retry_after": retryAfter})
		c.Abort()
	}
}

func (r RateLimitRule) key(c *gin.Context, keyFunc RateLimitKeyFunc) string {
	key := ""
	if keyFunc != nil {
		key = strings.TrimSpace(keyFunc(c))
	}
	if key == "" {
		key = c.ClientIP()
	}
	if r.Prefix == "" {
		return key
	}
	return r.Prefix + ":" + key
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 按 JSON 字段（小写）加 IP 限流，读取后恢复请求体
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONString(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

func peekJSONString(c *gin.Context, field string) string {
	if c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
