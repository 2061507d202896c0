package store

const (
	KeyPrefix = "fitforum:"

	// KeyTopics 话题集合(旧版数据，同时是迁移的来源)
	KeyTopics = "forum:topics"
	// KeyPoints 积分账本
	KeyPoints = "forum:points"
	// KeyUsers 用户表
	KeyUsers = "forum:users"
	// KeyPosts 迁移产出的新版帖子集合
	KeyPosts = "forum:posts"
	// KeyComments 迁移产出的新版评论集合
	KeyComments = "forum:comments"
	// KeyMigrationStatus 迁移状态标记(布尔值)
	KeyMigrationStatus = "forum:migrated"
)

// Key 拼接带项目前缀的完整存储键
func Key(key string) string {
	return KeyPrefix + key
}
