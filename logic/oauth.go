package logic

import (
	"context"
	"time"

	"fitforum/models"
	"fitforum/pkg/errorx"
	"fitforum/pkg/jwt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Clock 可注入的时钟，测试中可以用假时钟推进时间
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// OAuthProfile 模拟的第三方授权返回的用户资料
type OAuthProfile struct {
	Provider string `json:"provider"`
	OpenID   string `json:"open_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// OAuthResult 一次模拟授权的结果
type OAuthResult struct {
	State        string       `json:"state"`
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// 内置的模拟提供方，没有真实的第三方调用
var mockProviders = map[string]OAuthProfile{
	"wechat": {Provider: "wechat", OpenID: "wx_88420013", Nickname: "微信用户", Avatar: "/avatars/wechat.png"},
	"github": {Provider: "github", OpenID: "gh_7259104", Nickname: "GitHub User", Avatar: "/avatars/github.png"},
}

// OAuthSimulator 模拟第三方授权流程
// 用固定延迟模拟授权跳转和回调的网络耗时；延迟期间可以通过 ctx 取消
type OAuthSimulator struct {
	users *UserService
	clock Clock
	delay time.Duration
}

// NewOAuthSimulator 创建授权模拟器，clock 传 nil 时使用真实时钟
func NewOAuthSimulator(users *UserService, delay time.Duration, clock Clock) *OAuthSimulator {
	if clock == nil {
		clock = realClock{}
	}
	return &OAuthSimulator{
		users: users,
		clock: clock,
		delay: delay,
	}
}

// Authorize 执行一次模拟授权
// 等待模拟延迟后返回该渠道的固定用户资料，并为其颁发本地令牌
// ctx 取消时立即中止并返回 ctx 的错误
func (s *OAuthSimulator) Authorize(ctx context.Context, provider string) (*OAuthResult, error) {
	profile, ok := mockProviders[provider]
	if !ok {
		return nil, errorx.ErrInvalidProvider
	}

	state := uuid.NewString()
	zap.L().Debug("oauth authorize started",
		zap.String("provider", provider),
		zap.String("state", state))

	select {
	case <-ctx.Done():
		zap.L().Info("oauth authorize canceled",
			zap.String("provider", provider),
			zap.String("state", state))
		return nil, ctx.Err()
	case <-s.clock.After(s.delay):
	}

	user, err := s.users.ensureOAuthUser(&profile)
	if err != nil {
		return nil, err
	}

	aToken, rToken, err := jwt.GenToken(user.UserID, user.Username)
	if err != nil {
		zap.L().Error("jwt.GenToken failed", zap.Int64("user_id", user.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &OAuthResult{
		State:        state,
		User:         user,
		AccessToken:  aToken,
		RefreshToken: rToken,
	}, nil
}
