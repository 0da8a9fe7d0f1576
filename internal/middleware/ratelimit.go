package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/evandrht/festipass/internal/helpers"
)

// RateLimitMiddleware applies a fixed-window counter per user (falling back
// to client IP) backed by redis. A nil client disables limiting so the API
// keeps working when redis is down or not deployed.
func RateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		subject := c.ClientIP()
		if userID, exists := c.Get("user_id"); exists {
			if id, ok := userID.(uuid.UUID); ok {
				subject = id.String()
			}
		}
		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), subject)

		ctx := c.Request.Context()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Degrade to pass-through rather than failing requests.
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			helpers.RespondWithError(c, http.StatusTooManyRequests, "rate limit exceeded, try again shortly.")
			c.Abort()
			return
		}
		c.Next()
	}
}
