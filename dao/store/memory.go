package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore 纯内存实现，语义与 PebbleStore 一致
// 用于单元测试和不需要持久化的临时运行模式
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory 创建一个空的内存存储
func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get 读取并反序列化 key 对应的值，key 不存在时返回 (false, nil)
func (s *MemoryStore) Get(key string, dest any) (bool, error) {
	s.mu.RLock()
	data, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("unmarshal value of %s failed: %w", key, err)
	}
	return true, nil
}

// Set 序列化并整体覆盖写入
func (s *MemoryStore) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value of %s failed: %w", key, err)
	}
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
	return nil
}
