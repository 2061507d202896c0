package controller

import (
	"errors"
	"strings"

	"fitforum/models"
	"fitforum/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SignUpHandler 处理用户注册请求
func SignUpHandler(c *gin.Context) {
	// 1. 参数校验
	p := new(models.ParamSignUp)
	if err := c.ShouldBindJSON(p); err != nil {
		// validator 校验错误翻译后按字段返回，其余(如 JSON 语法错误)返回通用参数错误
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			ResponseError(c, errorx.ErrInvalidParam)
			return
		}
		ResponseErrorWithMsg(c, errorx.CodeInvalidParam, removeTopStruct(errs.Translate(trans)))
		return
	}

	// 2. 业务处理
	if err := users.SignUp(p); err != nil {
		HandleError(c, err)
		return
	}

	ResponseSuccess(c, nil)
}

// LoginHandler 处理用户登录请求
func LoginHandler(c *gin.Context) {
	var p models.ParamLogin
	if err := c.ShouldBindJSON(&p); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			ResponseError(c, errorx.ErrInvalidParam)
			return
		}
		ResponseErrorWithMsg(c, errorx.CodeInvalidParam, removeTopStruct(errs.Translate(trans)))
		return
	}

	aToken, rToken, err := users.Login(&p)
	if err != nil {
		HandleError(c, err)
		return
	}

	ResponseSuccess(c, map[string]string{
		"access_token":  aToken,
		"refresh_token": rToken,
	})
}

// RefreshTokenHandler 刷新 AccessToken
func RefreshTokenHandler(c *gin.Context) {
	rt := c.Query("refresh_token")
	// 客户端需要在 Header 中携带 Authorization: Bearer <access_token>
	authHeader := c.Request.Header.Get("Authorization")
	if authHeader == "" {
		ResponseErrorWithMsg(c, errorx.CodeInvalidToken, "请求头缺少Auth Token")
		return
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		ResponseErrorWithMsg(c, errorx.CodeInvalidToken, "Token格式错误")
		return
	}

	newAToken, newRToken, err := users.RefreshToken(rt)
	if err != nil {
		HandleError(c, err)
		return
	}

	ResponseSuccess(c, map[string]string{
		"access_token":  newAToken,
		"refresh_token": newRToken,
	})
}

// OAuthLoginHandler 模拟第三方授权登录
// 延迟期间客户端断开连接时授权随请求上下文一起取消
func OAuthLoginHandler(c *gin.Context) {
	var p models.ParamOAuthLogin
	if err := c.ShouldBindJSON(&p); err != nil {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}

	result, err := oauth.Authorize(c.Request.Context(), p.Provider)
	if err != nil {
		HandleError(c, err)
		return
	}

	ResponseSuccess(c, result)
}
