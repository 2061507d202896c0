// Package store 提供本地键值持久化门面
// 契约: Get(key, dest) / Set(key, value)，整值读写，值为 JSON 序列化结果
// 没有部分更新，也没有事务，调用方对同一个 key 总是整体读-改-写
package store

// Store 本地键值存储契约
type Store interface {
	// Get 读取 key 对应的值并反序列化到 dest
	// key 不存在时返回 (false, nil)，dest 保持调用方给定的默认值
	Get(key string, dest any) (bool, error)
	// Set 序列化 value 并整体覆盖写入 key
	Set(key string, value any) error
}
