package controller

import (
	"errors"

	"fitforum/logic"
	"fitforum/models"
	"fitforum/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CreateReplyHandler 回复话题
func CreateReplyHandler(c *gin.Context) {
	topicID, err := getTopicID(c)
	if err != nil {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}

	p := new(models.ParamReply)
	if err := c.ShouldBindJSON(p); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			ResponseError(c, errorx.ErrInvalidParam)
			return
		}
		ResponseErrorWithMsg(c, errorx.CodeInvalidParam, removeTopStruct(errs.Translate(trans)))
		return
	}

	reply, err := repo.AddReply(getActor(c), topicID, p.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	// 话题不存在时 Logic 层静默返回，HTTP 层补一个明确的 404 语义
	if reply == nil {
		ResponseError(c, errorx.ErrNotFound)
		return
	}

	ResponseSuccess(c, reply)
}

// DeleteReplyHandler 删除回复
func DeleteReplyHandler(c *gin.Context) {
	topicID, err := getTopicID(c)
	if err != nil {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	replyID, err := getReplyID(c)
	if err != nil {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}

	confirmed := c.Query("confirm") == "true"
	deleted, err := repo.DeleteReply(getActor(c), topicID, replyID, logic.ConfirmerFunc(func(logic.ConfirmRequest) bool {
		return confirmed
	}))
	if err != nil {
		HandleError(c, err)
		return
	}

	ResponseSuccess(c, gin.H{"deleted": deleted})
}
