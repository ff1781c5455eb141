package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Fixed-window counter in Redis. INCR and PEXPIRE run as one script so
// the window cannot be created without an expiry.
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter enforces per-client request limits using Redis.
// A nil limiter allows everything, so callers can wire it conditionally.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
}

// NewRedisLimiter creates a limiter backed by the given Redis client.
func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
	}
}

// Allow reports whether the request identified by key fits in the window.
// Redis failures fail open; throttling is not worth an outage.
func (l *RedisLimiter) Allow(c *gin.Context, key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	allowed, err := l.script.Run(c.Request.Context(), l.client, []string{key}, ttl, limit).Int64()
	if err != nil {
		return true
	}
	return allowed == 1
}

// RateLimit creates a Gin middleware that throttles by client IP.
// Intended for the auth endpoints to slow down credential stuffing.
func RateLimit(limiter *RedisLimiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.FullPath() + ":" + c.ClientIP()
		if !limiter.Allow(c, key, limit, window) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, slow down"})
			return
		}
		c.Next()
	}
}
