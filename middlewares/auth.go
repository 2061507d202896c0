package middlewares

import (
	"strings"

	"fitforum/controller"
	"fitforum/pkg/errorx"
	"fitforum/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware 基于 JWT 的认证中间件
// 解析 Authorization: Bearer <token>，把用户信息写入请求上下文
func JWTAuthMiddleware() func(c *gin.Context) {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			controller.ResponseError(c, errorx.ErrNeedLogin)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			controller.ResponseError(c, errorx.ErrInvalidToken)
			c.Abort()
			return
		}

		mc, err := jwt.ParseToken(parts[1])
		if err != nil {
			controller.ResponseError(c, errorx.ErrInvalidToken)
			c.Abort()
			return
		}

		// 将当前请求的用户信息保存到请求的上下文
		c.Set(controller.CtxUserIDKey, mc.UserID)
		c.Set(controller.CtxUsernameKey, mc.Username)
		c.Next()
	}
}
