package middleware

import (
	"fmt"
	"time"

	"bbs/internal/infra/cache"
	"bbs/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware 按用户和动作限流，必须挂在 JWTAuthMiddleware 之后。
// Redis 不可用时放行。
func RateLimitMiddleware(rdb *cache.RedisCache, action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		userID, err := utils.GetUserID(c)
		if err != nil {
			utils.Error(c, utils.CodeTokenInvalid, err.Error())
			return
		}
		key := fmt.Sprintf("rate:limit:%d:%s", userID, action)

		allowed, err := rdb.AllowRequest(c.Request.Context(), key, limit, window)
		if err != nil {
			zap.L().Warn("rate limit redis failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			utils.Error(c, utils.CodeTooManyRequests, "")
			return
		}

		c.Next()
	}
}
