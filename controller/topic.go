package controller

import (
	"errors"

	"fitforum/logic"
	"fitforum/models"
	"fitforum/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CreateTopicHandler 发布话题
func CreateTopicHandler(c *gin.Context) {
	// 1. 参数校验
	p := new(models.ParamCreateTopic)
	if err := c.ShouldBindJSON(p); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			ResponseError(c, errorx.ErrInvalidParam)
			return
		}
		ResponseErrorWithMsg(c, errorx.CodeInvalidParam, removeTopStruct(errs.Translate(trans)))
		return
	}

	// 2. 业务处理
	topic, err := repo.CreateTopic(getActor(c), p.CategoryID, p.Title, p.Content)
	if err != nil {
		HandleError(c, err)
		return
	}

	ResponseSuccess(c, topic)
}

// TopicListHandler 话题列表查询
// 支持 category / search / sort 三个查询参数，均可省略
func TopicListHandler(c *gin.Context) {
	var p models.ParamTopicList
	if err := c.ShouldBindQuery(&p); err != nil {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}

	topics := repo.GetFiltered(p.Category, p.Search, p.Sort)
	ResponseSuccess(c, topics)
}

// TopicDetailHandler 话题详情
// 每次打开详情浏览数 +1
func TopicDetailHandler(c *gin.Context) {
	topicID, err := getTopicID(c)
	if err != nil {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}

	// 先计数再取快照，返回的详情里带上这一次浏览
	if _, ok := repo.IncreaseViews(topicID); !ok {
		ResponseError(c, errorx.ErrNotFound)
		return
	}

	ResponseSuccess(c, repo.Get(topicID))
}

// DeleteTopicHandler 删除话题
// 确认步骤由 confirm=true 查询参数承载，未带确认参数视为用户取消
func DeleteTopicHandler(c *gin.Context) {
	topicID, err := getTopicID(c)
	if err != nil {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}

	confirmed := c.Query("confirm") == "true"
	deleted, err := repo.DeleteTopic(getActor(c), topicID, logic.ConfirmerFunc(func(logic.ConfirmRequest) bool {
		return confirmed
	}))
	if err != nil {
		HandleError(c, err)
		return
	}

	ResponseSuccess(c, gin.H{"deleted": deleted})
}
