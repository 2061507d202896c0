package logic

import (
	"fmt"
	"strconv"
	"sync"

	"fitforum/dao/store"
	"fitforum/models"
	"fitforum/pkg/errorx"
	"fitforum/pkg/jwt"
	"fitforum/pkg/snowflake"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService 用户注册/登录
// 用户表以 username 为键整体持久化在本地存储中，存储形态是 UserRecord
type UserService struct {
	mu    sync.Mutex
	store store.Store
}

// NewUserService 创建用户服务
func NewUserService(st store.Store) *UserService {
	return &UserService{store: st}
}

// SignUp 用户注册
func (s *UserService) SignUp(p *models.ParamSignUp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadLocked()
	if err != nil {
		return errorx.ErrServerBusy
	}
	if _, exists := users[p.Username]; exists {
		return errorx.ErrUserExist
	}

	hash, err := encryptPassword(p.Password)
	if err != nil {
		zap.L().Error("encrypt password failed", zap.Error(err))
		return errorx.ErrServerBusy
	}

	users[p.Username] = &models.UserRecord{
		User: models.User{
			UserID:   snowflake.GenID(),
			Username: p.Username,
			Nickname: p.Username,
			Avatar:   "/avatars/default.png",
			Level:    1,
		},
		Password: hash,
	}
	if err := s.saveLocked(users); err != nil {
		return errorx.ErrServerBusy
	}
	return nil
}

// Login 用户登录，成功时返回访问令牌和刷新令牌
func (s *UserService) Login(p *models.ParamLogin) (aToken, rToken string, err error) {
	s.mu.Lock()
	users, err := s.loadLocked()
	s.mu.Unlock()
	if err != nil {
		return "", "", errorx.ErrServerBusy
	}

	rec, exists := users[p.Username]
	if !exists {
		return "", "", errorx.ErrUserNotExist
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(p.Password)) != nil {
		return "", "", errorx.ErrInvalidPassword
	}

	aToken, rToken, err = jwt.GenToken(rec.UserID, rec.Username)
	if err != nil {
		zap.L().Error("jwt.GenToken failed", zap.Int64("user_id", rec.UserID), zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}
	return aToken, rToken, nil
}

// RefreshToken 用刷新令牌换发新的令牌对
func (s *UserService) RefreshToken(rToken string) (newAToken, newRToken string, err error) {
	userID, err := jwt.ParseRefreshToken(rToken)
	if err != nil {
		return "", "", errorx.ErrInvalidToken
	}

	user, ok := s.GetByID(userID)
	if !ok {
		return "", "", errorx.ErrUserNotExist
	}

	newAToken, newRToken, err = jwt.GenToken(user.UserID, user.Username)
	if err != nil {
		zap.L().Error("jwt.GenToken failed", zap.Int64("user_id", user.UserID), zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}
	return newAToken, newRToken, nil
}

// GetByID 按用户 ID 查找用户
func (s *UserService) GetByID(userID int64) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadLocked()
	if err != nil {
		return nil, false
	}
	for _, rec := range users {
		if rec.UserID == userID {
			return &rec.User, true
		}
	}
	return nil, false
}

// ensureOAuthUser 保证第三方登录的用户在本地用户表中存在
// 用户名由 provider 和 openid 拼出，首次登录时自动建号
func (s *UserService) ensureOAuthUser(profile *OAuthProfile) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadLocked()
	if err != nil {
		return nil, errorx.ErrServerBusy
	}

	username := fmt.Sprintf("%s_%s", profile.Provider, profile.OpenID)
	if rec, exists := users[username]; exists {
		return &rec.User, nil
	}

	// 第三方账号没有本地密码，填入随机串防止密码登录
	hash, err := encryptPassword(strconv.FormatInt(snowflake.GenID(), 10))
	if err != nil {
		return nil, errorx.ErrServerBusy
	}
	rec := &models.UserRecord{
		User: models.User{
			UserID:   snowflake.GenID(),
			Username: username,
			Nickname: profile.Nickname,
			Avatar:   profile.Avatar,
			Level:    1,
		},
		Password: hash,
	}
	users[username] = rec
	if err := s.saveLocked(users); err != nil {
		return nil, errorx.ErrServerBusy
	}
	return &rec.User, nil
}

// encryptPassword 使用 bcrypt 哈希密码，数据库不能保存明文
func encryptPassword(oPassword string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(oPassword), bcrypt.DefaultCost)
	return string(hash), err
}

func (s *UserService) loadLocked() (map[string]*models.UserRecord, error) {
	users := make(map[string]*models.UserRecord)
	if _, err := s.store.Get(store.Key(store.KeyUsers), &users); err != nil {
		zap.L().Error("load users failed", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (s *UserService) saveLocked(users map[string]*models.UserRecord) error {
	if err := s.store.Set(store.Key(store.KeyUsers), users); err != nil {
		zap.L().Error("persist users failed", zap.Error(err))
		return err
	}
	return nil
}
