package logic

import (
	"fmt"
	"sync"

	"fitforum/dao/store"
	"fitforum/models"

	"go.uber.org/zap"
)

// 新版帖子正文的最大长度(按字符计)，超长时截断为 277 个字符加省略号
const (
	maxPostContentLen = 280
	contentEllipsis   = "..."
)

// MigrateResult 一次迁移的执行结果
type MigrateResult struct {
	Success          bool   `json:"success"`
	MigratedPosts    int    `json:"migrated_posts"`
	MigratedComments int    `json:"migrated_comments"`
	Error            string `json:"error,omitempty"`
}

// Migrator 旧版 Topic/Reply 到新版 Post/Comment 的一次性迁移器
// 两个状态: 未迁移 / 已迁移，由持久化的布尔标记记录
// 已迁移后再调用 Migrate 是报告零条记录的空操作
type Migrator struct {
	mu    sync.Mutex
	store store.Store
}

// NewMigrator 创建迁移器
func NewMigrator(st store.Store) *Migrator {
	return &Migrator{store: st}
}

// Migrated 返回当前的迁移状态
func (m *Migrator) Migrated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.migratedLocked()
}

// Migrate 执行迁移
// 旧集合为空也视为迁移成功(没有东西可迁)；转换过程中的任何错误都会被捕获，
// 状态保持未迁移且不落任何新集合。两个新集合完整构建之后才开始写入
func (m *Migrator) Migrate() MigrateResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.migratedLocked() {
		return MigrateResult{Success: true}
	}

	var topics []*models.Topic
	if _, err := m.store.Get(store.Key(store.KeyTopics), &topics); err != nil {
		zap.L().Error("migration: load legacy topics failed", zap.Error(err))
		return MigrateResult{Error: err.Error()}
	}

	if len(topics) == 0 {
		if err := m.setMigratedLocked(true); err != nil {
			return MigrateResult{Error: err.Error()}
		}
		return MigrateResult{Success: true}
	}

	posts := make([]*models.Post, 0, len(topics))
	comments := make([]*models.Comment, 0)
	for _, t := range topics {
		post, topicComments, err := convertTopic(t)
		if err != nil {
			zap.L().Error("migration: convert topic failed",
				zap.Int64("topic_id", t.ID),
				zap.Error(err))
			return MigrateResult{Error: err.Error()}
		}
		posts = append(posts, post)
		comments = append(comments, topicComments...)
	}

	if err := m.store.Set(store.Key(store.KeyPosts), posts); err != nil {
		zap.L().Error("migration: persist posts failed", zap.Error(err))
		return MigrateResult{Error: err.Error()}
	}
	if err := m.store.Set(store.Key(store.KeyComments), comments); err != nil {
		zap.L().Error("migration: persist comments failed", zap.Error(err))
		return MigrateResult{Error: err.Error()}
	}
	if err := m.setMigratedLocked(true); err != nil {
		return MigrateResult{Error: err.Error()}
	}

	zap.L().Info("migration finished",
		zap.Int("posts", len(posts)),
		zap.Int("comments", len(comments)))
	return MigrateResult{
		Success:          true,
		MigratedPosts:    len(posts),
		MigratedComments: len(comments),
	}
}

// Reset 强制回到未迁移状态，不动已生成的新集合
// 仅供测试和开发环境使用
func (m *Migrator) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setMigratedLocked(false)
}

// convertTopic 把一个旧话题转换成一个新帖子和一组评论
func convertTopic(t *models.Topic) (*models.Post, []*models.Comment, error) {
	cat, ok := models.CategoryByID(t.CategoryID)
	if !ok {
		return nil, nil, fmt.Errorf("unknown category %q in topic %d", t.CategoryID, t.ID)
	}

	post := &models.Post{
		ID:      t.ID, // 保留旧话题 ID
		Type:    "text",
		UserID:  t.Author.UserID,
		Content: truncateContent(t.Title + "\n\n" + t.Content),
		Tags:    []string{cat.Name},
		Stats: models.PostStats{
			Likes:    t.Likes,
			Comments: int64(len(t.Replies)),
			Views:    t.Views,
		},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		IsPinned:  t.IsPinned,
		Legacy:    true,
	}

	comments := make([]*models.Comment, 0, len(t.Replies))
	for _, r := range t.Replies {
		comments = append(comments, &models.Comment{
			ID:        r.ID, // 保留旧回复 ID
			PostID:    t.ID,
			UserID:    r.Author.UserID,
			Content:   r.Content,
			Likes:     r.Likes,
			CreatedAt: r.CreatedAt,
		})
	}
	return post, comments, nil
}

// truncateContent 按字符截断正文
// 超过 280 个字符时保留前 277 个并追加 "..."，结果正好 280 个字符
func truncateContent(s string) string {
	runes := []rune(s)
	if len(runes) <= maxPostContentLen {
		return s
	}
	return string(runes[:maxPostContentLen-len(contentEllipsis)]) + contentEllipsis
}

func (m *Migrator) migratedLocked() bool {
	var migrated bool
	if _, err := m.store.Get(store.Key(store.KeyMigrationStatus), &migrated); err != nil {
		zap.L().Error("load migration status failed", zap.Error(err))
		return false
	}
	return migrated
}

func (m *Migrator) setMigratedLocked(v bool) error {
	if err := m.store.Set(store.Key(store.KeyMigrationStatus), v); err != nil {
		zap.L().Error("persist migration status failed", zap.Error(err))
		return err
	}
	return nil
}
