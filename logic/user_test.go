package logic

import (
	"testing"

	"fitforum/dao/store"
	"fitforum/models"
	"fitforum/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpAndLogin(t *testing.T) {
	users := NewUserService(store.NewMemory())

	p := &models.ParamSignUp{Username: "lifter", Password: "secret123", RePassword: "secret123"}
	require.NoError(t, users.SignUp(p))

	// 用户名重复
	err := users.SignUp(p)
	assert.ErrorIs(t, err, errorx.ErrUserExist)

	aToken, rToken, err := users.Login(&models.ParamLogin{Username: "lifter", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, aToken)
	assert.NotEmpty(t, rToken)
}

func TestLoginFailures(t *testing.T) {
	users := NewUserService(store.NewMemory())
	require.NoError(t, users.SignUp(&models.ParamSignUp{Username: "lifter", Password: "secret123", RePassword: "secret123"}))

	_, _, err := users.Login(&models.ParamLogin{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, errorx.ErrUserNotExist)

	_, _, err = users.Login(&models.ParamLogin{Username: "lifter", Password: "wrong"})
	assert.ErrorIs(t, err, errorx.ErrInvalidPassword)
}

func TestPasswordHashSurvivesPersistence(t *testing.T) {
	st := store.NewMemory()
	users := NewUserService(st)
	require.NoError(t, users.SignUp(&models.ParamSignUp{Username: "lifter", Password: "secret123", RePassword: "secret123"}))

	// 落盘的用户记录必须带着口令哈希
	var recs map[string]*models.UserRecord
	found, err := st.Get(store.Key(store.KeyUsers), &recs)
	require.NoError(t, err)
	require.True(t, found)
	require.Contains(t, recs, "lifter")
	assert.NotEmpty(t, recs["lifter"].Password)

	// 换一个服务实例从同一存储读取，登录仍然成立
	users2 := NewUserService(st)
	aToken, _, err := users2.Login(&models.ParamLogin{Username: "lifter", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, aToken)
}

func TestRefreshToken(t *testing.T) {
	users := NewUserService(store.NewMemory())
	require.NoError(t, users.SignUp(&models.ParamSignUp{Username: "lifter", Password: "secret123", RePassword: "secret123"}))

	_, rToken, err := users.Login(&models.ParamLogin{Username: "lifter", Password: "secret123"})
	require.NoError(t, err)

	newA, newR, err := users.RefreshToken(rToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newA)
	assert.NotEmpty(t, newR)

	_, _, err = users.RefreshToken("not-a-token")
	assert.ErrorIs(t, err, errorx.ErrInvalidToken)
}
