package middlewares

import (
	"net/http"
	"time"

	"fitforum/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// RateLimitMiddleware 令牌桶限流中间件
// fillInterval: 令牌填充间隔(例如 10ms = 每秒100个令牌)
// capacity: 令牌桶容量，即允许的突发请求数量
func RateLimitMiddleware(fillInterval time.Duration, capacity int64) gin.HandlerFunc {
	bucket := ratelimit.NewBucket(fillInterval, capacity)

	return func(c *gin.Context) {
		// 非阻塞取令牌，桶空了就直接拒绝
		if bucket.TakeAvailable(1) < 1 {
			// 限流响应带真实的 429 状态码，方便网关/客户端识别
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code": errorx.CodeRateLimitExceeded,
				"msg":  "请求过于频繁，请稍后再试",
				"data": nil,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
