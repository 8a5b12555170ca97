package middleware

import (
	"strings"

	"bbs/config"
	"bbs/internal/infra/cache"
	"bbs/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthMiddleware 校验 Authorization 头里的 token，把 user_id、username 放进上下文。
// 同时接受 "Bearer <token>" 和裸 token。
func JWTAuthMiddleware(cfg *config.Config, rdb *cache.RedisCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, utils.CodeTokenInvalid, "未提供Token")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := utils.ParseToken(cfg, tokenString)
		if err != nil {
			utils.Error(c, utils.CodeTokenInvalid, "")
			return
		}

		blacklisted, err := utils.IsTokenBlacklisted(c.Request.Context(), rdb, claims)
		if err != nil {
			// Redis 故障时降级放行
			zap.L().Warn("blacklist check failed", zap.Error(err),
				zap.String("token_part", utils.GetTokenHash(tokenString)))
		} else if blacklisted {
			utils.Error(c, utils.CodeTokenInvalid, "")
			return
		}

		c.Set(utils.CtxUserID, claims.UserID)
		c.Set(utils.CtxUsername, claims.Username)
		c.Set(utils.CtxClaims, claims)
		c.Next()
	}
}
