package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-user-accounts/pkg/response"
)

// ipFromCtx returns the address stored by RealIP, then c.ClientIP, then "unknown".
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(c *gin.Context) string

// AllowFunc reports whether a request skips the limiter.
type AllowFunc func(*gin.Context) bool

// KeyByIPAndPath counts per client, method and route template, so
// /users/1 and /users/2 share a bucket.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + c.Request.Method + ":" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// windowCounter counts hits on key within a fixed window and reports how
// long until the window resets.
type windowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int, resetIn time.Duration, err error)
}

// hitScript increments the window counter, starts its TTL on the first hit
// and returns {count, pttl}.
var hitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

type redisCounter struct {
	rdb redis.Scripter
}

func (r redisCounter) Hit(ctx context.Context, key string, window time.Duration) (int, time.Duration, error) {
	vals, err := hitScript.Run(ctx, r.rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(vals) != 2 {
		return 0, 0, fmt.Errorf("rate limit script: unexpected reply %v", vals)
	}
	reset := time.Duration(vals[1]) * time.Millisecond
	if reset < 0 {
		reset = 0
	}
	return int(vals[0]), reset, nil
}

// Limit describes a fixed window limit.
type Limit struct {
	Max    int
	Window time.Duration
	Key    KeyFunc
	Allow  AllowFunc
}

// RateLimit is a fixed window limiter backed by Redis. A nil client or a
// non-positive max disables it.
func RateLimit(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	l := Limit{Max: max, Window: window, Key: keyFn, Allow: allow}
	if rdb == nil {
		return limit(nil, l)
	}
	return limit(redisCounter{rdb: rdb}, l)
}

// limit sets the X-RateLimit-* headers and answers 429 once a key passes
// l.Max in its window. OPTIONS and allowed requests are not counted.
// Counter failures let the request through.
func limit(counter windowCounter, l Limit) gin.HandlerFunc {
	if counter == nil || l.Max <= 0 || l.Window <= 0 || l.Key == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (l.Allow != nil && l.Allow(c)) {
			c.Next()
			return
		}

		count, reset, err := counter.Hit(c.Request.Context(), l.Key(c), l.Window)
		if err != nil {
			c.Next()
			return
		}
		resetSec := int(math.Ceil(reset.Seconds()))

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(l.Max-count, 0)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > l.Max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Error[any](c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
