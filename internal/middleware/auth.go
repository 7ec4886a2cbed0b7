package middleware

import (
	"strings"

	"habitflow_backend/internal/config"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/util"
	"habitflow_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 验证 JWT 并将用户信息写入上下文
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("token parse failed", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// ActivityMiddleware 记录用户最近活跃时间，失败不影响请求
func ActivityMiddleware(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		userID, exists := c.Get("user_id")
		if !exists {
			return
		}
		id, ok := userID.(uint)
		if !ok {
			return
		}
		if err := userRepo.TouchLastSeen(id); err != nil {
			logger.Log.Warn("failed to update last seen", zap.Uint("user_id", id), zap.Error(err))
		}
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return authHeader
	}
	return c.Query("token")
}
