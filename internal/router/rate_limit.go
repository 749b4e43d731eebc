package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/i18n"
	"github.com/vms-next/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// 读取请求体提取限流字段的上限，超出部分原样保留给 handler
const rateLimitBodyPeek = 16 << 10

// RateLimitKeyFunc 生成限流 key
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则，WindowSeconds 或 MaxRequests 为 0 时不限流
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

func (r RateLimitRule) disabled() bool {
	return r.WindowSeconds <= 0 || r.MaxRequests <= 0
}

// limiter 放行返回 ok=true；拒绝时 wait 为建议等待秒数
type limiter interface {
	allow(ctx context.Context, key string) (wait int, ok bool, err error)
}

// KEYS[1] 计数 key，ARGV[1] 窗口秒数；返回 {当前计数, 剩余 TTL}
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("TTL", KEYS[1])}
`)

type redisLimiter struct {
	client *redis.Client
	rule   RateLimitRule
}

func (l *redisLimiter) allow(ctx context.Context, key string) (int, bool, error) {
	values, err := rateLimitScript.Run(ctx, l.client, []string{key}, l.rule.WindowSeconds).Int64Slice()
	if err != nil {
		return 0, false, err
	}
	if len(values) < 2 {
		return 0, false, redis.Nil
	}
	if values[0] > int64(l.rule.MaxRequests) {
		return int(values[1]), false, nil
	}
	return 0, true, nil
}

// RateLimitMiddleware 有 Redis 时多实例共享计数，否则使用进程内令牌桶
// Redis 执行失败时当次请求改由进程内限流判定。
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	if rule.disabled() {
		return func(c *gin.Context) { c.Next() }
	}
	local := newLocalRateLimiter(rule)
	var primary limiter = local
	if client != nil {
		primary = &redisLimiter{client: client, rule: rule}
	}

	return func(c *gin.Context) {
		key := rateLimitKey(c, rule.Prefix, keyFunc)
		wait, ok, err := primary.allow(c.Request.Context(), key)
		if err != nil {
			logger.Warnw("rate_limit_redis_failed", "prefix", rule.Prefix, "error", err)
			wait, ok, _ = local.allow(c.Request.Context(), key)
		}
		if !ok {
			abortRateLimited(c, rule, wait)
			return
		}
		c.Next()
	}
}

func rateLimitKey(c *gin.Context, prefix string, keyFunc RateLimitKeyFunc) string {
	key := ""
	if keyFunc != nil {
		key = strings.TrimSpace(keyFunc(c))
	}
	if key == "" {
		key = c.ClientIP()
	}
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}

func abortRateLimited(c *gin.Context, rule RateLimitRule, waitSeconds int) {
	if waitSeconds < 1 {
		waitSeconds = max(rule.WindowSeconds, 1)
	}
	msgKey := strings.TrimSpace(rule.MessageKey)
	if msgKey == "" {
		msgKey = "error.rate_limited"
	}
	c.Header("Retry-After", strconv.Itoa(waitSeconds))
	response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), msgKey, waitSeconds))
	c.Abort()
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 按 JSON 字段加 IP 限流，多个字段取第一个非空值；字段都为空时退化为 IP
func KeyByIPAndJSONField(fields ...string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONField(c, fields...))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

// peekJSONField 读取请求体前缀解析字段，读过的部分拼回 Body
func peekJSONField(c *gin.Context, fields ...string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	head, err := io.ReadAll(io.LimitReader(c.Request.Body, rateLimitBodyPeek))
	c.Request.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), c.Request.Body), c.Request.Body}
	if err != nil || len(head) == 0 {
		return ""
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(head, &payload); err != nil {
		return ""
	}
	for _, field := range fields {
		if text, ok := payload[field].(string); ok {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
