package routers

import (
	"net/http"
	"time"

	"fitforum/controller"
	"fitforum/logger"
	"fitforum/middlewares"
	"fitforum/settings"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 初始化路由配置
// mode: 运行模式 (debug, release, test)
func SetupRouter(mode string) *gin.Engine {
	if mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 使用 New 而不是 Default，以便完全自定义中间件
	r := gin.New()

	// 解析限流配置中的时间间隔字符串(如 "10ms")，解析失败时退回默认值
	fillInterval := 10 * time.Millisecond
	var capacity int64 = 200
	if settings.Conf.RateLimit != nil {
		if d, err := time.ParseDuration(settings.Conf.RateLimit.FillInterval); err == nil {
			fillInterval = d
		}
		capacity = settings.Conf.RateLimit.Capacity
	}

	r.Use(
		logger.GinLogger(),
		logger.GinRecovery(true),
		middlewares.RateLimitMiddleware(fillInterval, capacity),
		middlewares.TimeoutMiddleware(10*time.Second),
	)

	// Prometheus 指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof 只在非生产环境注册
	if mode != gin.ReleaseMode {
		pprof.Register(r)
	}

	v1 := r.Group("/api/v1")

	// ----------------------------------------------------------------
	// A. 公共路由: 注册/登录和所有只读/匿名操作
	// 点赞和浏览按产品行为允许匿名访问
	// ----------------------------------------------------------------
	{
		v1.POST("/signup", controller.SignUpHandler)
		v1.POST("/login", controller.LoginHandler)
		v1.POST("/oauth/login", controller.OAuthLoginHandler)
		v1.POST("/refresh_token", controller.RefreshTokenHandler)

		v1.GET("/categories", controller.CategoryHandler)
		v1.GET("/topics", controller.TopicListHandler)
		v1.GET("/topic/:id", controller.TopicDetailHandler)
		v1.POST("/topic/:id/like", controller.LikeTopicHandler)
		v1.POST("/topic/:id/reply/:rid/like", controller.LikeReplyHandler)
	}

	// ----------------------------------------------------------------
	// B. 认证路由: 需要 Header 中携带 Authorization: Bearer <token>
	// ----------------------------------------------------------------
	authGroup := v1.Group("")
	authGroup.Use(middlewares.JWTAuthMiddleware())
	{
		authGroup.POST("/topic", controller.CreateTopicHandler)
		authGroup.DELETE("/topic/:id", controller.DeleteTopicHandler)
		authGroup.POST("/topic/:id/reply", controller.CreateReplyHandler)
		authGroup.DELETE("/topic/:id/reply/:rid", controller.DeleteReplyHandler)

		authGroup.GET("/points", controller.PointsHandler)

		authGroup.POST("/migrate", controller.MigrateHandler)
		authGroup.GET("/migrate/status", controller.MigrateStatusHandler)
		if mode != gin.ReleaseMode {
			// 测试/开发专用的逃生通道
			authGroup.POST("/migrate/reset", controller.MigrateResetHandler)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"msg": "404 page not found",
		})
	})

	return r
}
