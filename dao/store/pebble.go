package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"
)

// PebbleStore 基于 Pebble 的嵌入式本地存储
// *pebble.DB 本身是并发安全的，整个应用共享一个句柄
type PebbleStore struct {
	db *pebble.DB
}

// Open 打开(或创建)指定路径的 Pebble 数据库
func Open(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s failed: %w", path, err)
	}
	zap.L().Info("init store success", zap.String("path", path))
	return &PebbleStore{db: db}, nil
}

// Close 关闭数据库，程序退出时释放资源
func (s *PebbleStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get 读取并反序列化 key 对应的值，key 不存在时返回 (false, nil)
func (s *PebbleStore) Get(key string, dest any) (bool, error) {
	data, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("pebble get %s failed: %w", key, err)
	}
	defer closer.Close()

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("unmarshal value of %s failed: %w", key, err)
	}
	return true, nil
}

// Set 序列化并整体覆盖写入，pebble.Sync 保证落盘
func (s *PebbleStore) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value of %s failed: %w", key, err)
	}
	if err := s.db.Set([]byte(key), data, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set %s failed: %w", key, err)
	}
	return nil
}
