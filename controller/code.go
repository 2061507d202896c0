package controller

import (
	"errors"
	"net/http"

	"fitforum/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResponseData 统一响应结构体
type ResponseData struct {
	Code int    `json:"code"`           // 业务响应状态码
	Msg  any    `json:"msg"`            // 提示信息
	Data any    `json:"data,omitempty"` // 数据
}

const CodeSuccess = 1000

// ResponseError 返回业务错误响应
func ResponseError(c *gin.Context, err *errorx.CodeError) {
	c.JSON(http.StatusOK, &ResponseData{
		Code: err.Code,
		Msg:  err.Msg,
	})
}

// ResponseErrorWithMsg 返回带自定义消息的错误响应
func ResponseErrorWithMsg(c *gin.Context, code int, msg any) {
	c.JSON(http.StatusOK, &ResponseData{
		Code: code,
		Msg:  msg,
	})
}

// ResponseSuccess 返回成功响应
func ResponseSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, &ResponseData{
		Code: CodeSuccess,
		Msg:  "success",
		Data: data,
	})
}

// HandleError 统一处理 Logic 层返回的错误
// 业务错误(CodeError)按错误码透传；其余视为系统错误，记录日志并返回服务繁忙
func HandleError(c *gin.Context, err error) {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		ResponseError(c, codeErr)
		return
	}
	zap.L().Error("unexpected error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	ResponseError(c, errorx.ErrServerBusy)
}
