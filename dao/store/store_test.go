package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// 两种后端共用同一组契约测试
func runStoreContract(t *testing.T, s Store) {
	t.Helper()

	// 缺失的 key 返回 (false, nil)，dest 保持默认值
	got := payload{Name: "default"}
	found, err := s.Get("missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "default", got.Name)

	// 写入后读回
	require.NoError(t, s.Set("k", payload{Name: "squat", Count: 3}))
	found, err = s.Get("k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "squat", Count: 3}, got)

	// 整值覆盖，没有部分更新
	require.NoError(t, s.Set("k", payload{Name: "deadlift"}))
	found, err = s.Get("k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "deadlift"}, got)

	// 布尔等标量值同样适用
	require.NoError(t, s.Set("flag", true))
	var flag bool
	found, err = s.Get("flag", &flag)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, flag)
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemory())
}

func TestPebbleStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	defer s.Close()

	runStoreContract(t, s)
}

func TestPebbleStoreReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", payload{Name: "bench", Count: 5}))
	require.NoError(t, s.Close())

	// 重新打开后数据仍在
	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	var got payload
	found, err := s2.Get("k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "bench", Count: 5}, got)
}
