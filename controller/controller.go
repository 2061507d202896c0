package controller

import "fitforum/logic"

// 各 Handler 依赖的业务对象，在 main 中构造后通过 Init 注入
// 仓库/账本/迁移器本身是显式对象，这里只是把它们挂进 handler 可见的位置
var (
	repo     *logic.Repository
	ledger   *logic.Ledger
	migrator *logic.Migrator
	users    *logic.UserService
	oauth    *logic.OAuthSimulator
)

// Init 注入业务依赖，必须在注册路由之前调用
func Init(r *logic.Repository, l *logic.Ledger, m *logic.Migrator, u *logic.UserService, o *logic.OAuthSimulator) {
	repo = r
	ledger = l
	migrator = m
	users = u
	oauth = o
}
