package controller

import (
	"fitforum/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 返回固定的分类注册表，顺序即展示顺序
func CategoryHandler(c *gin.Context) {
	ResponseSuccess(c, models.Categories)
}
