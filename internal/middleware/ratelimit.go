package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/pkg/response"
	"github.com/redis/go-redis/v9"
)

// RateLimit allows max requests per window per client IP, counted in
// fixed windows in Redis. Without Redis every request passes.
func RateLimit(rdb *redis.Client, scope string, max int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if rdb == nil || ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		bucket := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("folio:rate_limit:%s:%s:%d", scope, ip, bucket)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.PExpire(ctx, key, window+time.Second)
		}

		if count > max {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())+1))
			response.TooManyRequests(c)
			return
		}

		c.Next()
	}
}
