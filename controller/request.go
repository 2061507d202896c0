package controller

import (
	"errors"
	"strconv"

	"fitforum/models"

	"github.com/gin-gonic/gin"
)

// Context 中保存用户信息的 Key
// 定义在 controller 包中而非 middlewares 包中，避免循环引用
const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "username"
)

var ErrorUserNotLogin = errors.New("用户未登录")

// GetCurrentUser 从 Gin 上下文中获取当前登录的用户ID
func GetCurrentUser(c *gin.Context) (userID int64, err error) {
	uid, ok := c.Get(CtxUserIDKey)
	if !ok {
		err = ErrorUserNotLogin
		return
	}
	userID, ok = uid.(int64)
	if !ok {
		err = ErrorUserNotLogin
		return
	}
	return userID, nil
}

// getActor 解析当前登录用户的完整信息
// 未登录或用户不存在时返回 nil，由 Logic 层按匿名访问处理
func getActor(c *gin.Context) *models.User {
	userID, err := GetCurrentUser(c)
	if err != nil {
		return nil
	}
	user, ok := users.GetByID(userID)
	if !ok {
		return nil
	}
	return user
}

// getTopicID 从路径参数中解析话题 ID
func getTopicID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// getReplyID 从路径参数中解析回复 ID
func getReplyID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("rid"), 10, 64)
}
