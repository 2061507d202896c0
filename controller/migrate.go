package controller

import (
	"github.com/gin-gonic/gin"
)

// MigrateHandler 手动触发旧数据迁移
// 迁移自身幂等，已迁移时返回零条记录
func MigrateHandler(c *gin.Context) {
	result := migrator.Migrate()
	ResponseSuccess(c, result)
}

// MigrateStatusHandler 查询迁移状态
func MigrateStatusHandler(c *gin.Context) {
	ResponseSuccess(c, gin.H{"migrated": migrator.Migrated()})
}

// MigrateResetHandler 强制重置迁移标记(仅 debug 模式注册)
// 不会清理已生成的新集合
func MigrateResetHandler(c *gin.Context) {
	if err := migrator.Reset(); err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, nil)
}
