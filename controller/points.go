package controller

import (
	"fitforum/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// PointsHandler 查询当前用户的积分总额和流水
func PointsHandler(c *gin.Context) {
	userID, err := GetCurrentUser(c)
	if err != nil {
		ResponseError(c, errorx.ErrNeedLogin)
		return
	}

	ResponseSuccess(c, gin.H{
		"total":   ledger.GetTotal(userID),
		"history": ledger.History(userID),
	})
}
