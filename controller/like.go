package controller

import (
	"fitforum/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// LikeTopicHandler 点赞话题，返回新的点赞数
// 点赞不要求登录
func LikeTopicHandler(c *gin.Context) {
	topicID, err := getTopicID(c)
	if err != nil {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}

	likes, ok := repo.LikeTopic(topicID)
	if !ok {
		ResponseError(c, errorx.ErrNotFound)
		return
	}

	ResponseSuccess(c, gin.H{"likes": likes})
}

// LikeReplyHandler 点赞回复，返回新的点赞数
func LikeReplyHandler(c *gin.Context) {
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

	likes, ok := repo.LikeReply(topicID, replyID)
	if !ok {
		ResponseError(c, errorx.ErrNotFound)
		return
	}

	ResponseSuccess(c, gin.H{"likes": likes})
}
