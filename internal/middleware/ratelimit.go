package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/drivesphere/backend/pkg/response"
)

// RateLimit returns a Redis fixed-window rate limiter keyed by client IP and
// route. Public auth endpoints (login, signup, redemption) sit behind it so a
// single host cannot hammer token or password checks. Fails open when Redis
// is unavailable.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}
		key := rateKey(c.ClientIP(), c.FullPath(), window)
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			_ = rdb.Expire(ctx, key, window).Err()
		}
		if count > int64(limit) {
			response.TooManyRequests(c, "too many requests, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}

func rateKey(ip, path string, window time.Duration) string {
	bucket := time.Now().Unix() / int64(window.Seconds())
	return fmt.Sprintf("ratelimit:%s:%s:%d", ip, path, bucket)
}
