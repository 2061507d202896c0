package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 业务指标计数器
// 通过 /metrics 路由暴露给 Prometheus 抓取
var (
	// TopicCreated 成功创建的话题总数
	TopicCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fitforum",
		Name:      "topics_created_total",
		Help:      "Total number of topics created",
	})

	// ReplyCreated 成功创建的回复总数
	ReplyCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fitforum",
		Name:      "replies_created_total",
		Help:      "Total number of replies created",
	})

	// PointsAwarded 累计发放的积分数
	PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fitforum",
		Name:      "points_awarded_total",
		Help:      "Total points awarded to users",
	})
)
