package logic

import (
	"sort"
	"strings"
	"sync"
	"time"

	"fitforum/dao/store"
	"fitforum/models"
	"fitforum/pkg/errorx"
	"fitforum/pkg/metrics"
	"fitforum/pkg/snowflake"

	"go.uber.org/zap"
)

// 积分奖励常量
const (
	PointsCreateTopic = 10 // 发布话题奖励
	PointsReply       = 5  // 回复话题奖励
)

// Notifier 面向用户的通知契约，fire-and-forget
type Notifier interface {
	Warning(msg string)
	Success(msg string)
}

// ZapNotifier 默认实现，把通知写进日志
type ZapNotifier struct{}

func (ZapNotifier) Warning(msg string) { zap.L().Warn("user notice", zap.String("msg", msg)) }
func (ZapNotifier) Success(msg string) { zap.L().Info("user notice", zap.String("msg", msg)) }

// ConfirmRequest 删除等危险操作前的确认请求
type ConfirmRequest struct {
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
}

// Confirmer 确认契约，返回用户是否确认执行操作
type Confirmer interface {
	Confirm(req ConfirmRequest) bool
}

// ConfirmerFunc 函数适配器
type ConfirmerFunc func(req ConfirmRequest) bool

func (f ConfirmerFunc) Confirm(req ConfirmRequest) bool { return f(req) }

// Repository 话题仓库
// 持有内存中的话题集合并同步到本地存储；每次变更都整体读-改-写整个集合
// 集合内部按创建时间倒序(新话题头插)，计数器只增不减
type Repository struct {
	mu     sync.Mutex
	store  store.Store
	ledger *Ledger
	notify Notifier
	topics []*models.Topic
}

// NewRepository 创建话题仓库，依赖显式注入
func NewRepository(st store.Store, ledger *Ledger, notify Notifier) *Repository {
	if notify == nil {
		notify = ZapNotifier{}
	}
	return &Repository{
		store:  st,
		ledger: ledger,
		notify: notify,
	}
}

// Initialize 加载持久化的话题集合
// 集合不存在或为空时写入内置示例话题；已有数据时不会重新播种，多次调用幂等
func (r *Repository) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var topics []*models.Topic
	found, err := r.store.Get(store.Key(store.KeyTopics), &topics)
	if err != nil {
		zap.L().Error("load topics failed", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if found && len(topics) > 0 {
		r.topics = topics
		return nil
	}

	r.topics = seedTopics()
	if err := r.persistLocked(); err != nil {
		return err
	}
	zap.L().Info("seeded example topics", zap.Int("count", len(r.topics)))
	return nil
}

// CreateTopic 发布新话题
// 需要已登录用户；ID 由雪花算法派生自创建时间，新话题插入集合头部
// 发布成功后奖励固定积分
func (r *Repository) CreateTopic(actor *models.User, categoryID, title, content string) (*models.Topic, error) {
	if actor == nil {
		r.notify.Warning("请先登录后再发布话题")
		return nil, errorx.ErrNeedLogin
	}
	if _, ok := models.CategoryByID(categoryID); !ok {
		return nil, errorx.ErrInvalidCategory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	topic := &models.Topic{
		ID:         snowflake.GenID(),
		CategoryID: categoryID,
		Title:      title,
		Content:    content,
		Author:     actor.AsAuthor(),
		CreatedAt:  now,
		UpdatedAt:  now,
		Replies:    make([]*models.Reply, 0),
	}

	// 头插保证集合天然按创建时间倒序
	r.topics = append([]*models.Topic{topic}, r.topics...)
	if err := r.persistLocked(); err != nil {
		return nil, err
	}

	if err := r.ledger.Award(actor.UserID, PointsCreateTopic, "发布话题"); err != nil {
		zap.L().Error("award points failed",
			zap.Int64("user_id", actor.UserID),
			zap.Error(err))
		// 积分记账失败不影响发帖主流程
	}

	metrics.TopicCreated.Inc()
	r.notify.Success("发布成功")
	return cloneTopic(topic), nil
}

// AddReply 回复话题
// 需要已登录用户；话题不存在时静默返回 (nil, nil)
// 回复追加到末尾，保持插入顺序，同时刷新话题的 UpdatedAt
func (r *Repository) AddReply(actor *models.User, topicID int64, content string) (*models.Reply, error) {
	if actor == nil {
		r.notify.Warning("请先登录后再回复")
		return nil, errorx.ErrNeedLogin
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	topic := r.findLocked(topicID)
	if topic == nil {
		return nil, nil
	}

	now := time.Now()
	reply := &models.Reply{
		ID:        snowflake.GenID(),
		Author:    actor.AsAuthor(),
		Content:   content,
		CreatedAt: now,
	}
	topic.Replies = append(topic.Replies, reply)
	topic.UpdatedAt = now

	if err := r.persistLocked(); err != nil {
		return nil, err
	}

	if err := r.ledger.Award(actor.UserID, PointsReply, "回复话题"); err != nil {
		zap.L().Error("award points failed",
			zap.Int64("user_id", actor.UserID),
			zap.Error(err))
	}

	metrics.ReplyCreated.Inc()
	rc := *reply
	return &rc, nil
}

// LikeTopic 点赞话题，返回新的点赞数
// 不要求登录(匿名点赞)；话题不存在时返回 (0, false)
func (r *Repository) LikeTopic(topicID int64) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	topic := r.findLocked(topicID)
	if topic == nil {
		return 0, false
	}
	topic.Likes++
	if err := r.persistLocked(); err != nil {
		// 计数已在内存中生效，持久化失败只记录日志
		zap.L().Error("persist after like failed", zap.Int64("topic_id", topicID), zap.Error(err))
	}
	return topic.Likes, true
}

// LikeReply 点赞回复，返回新的点赞数
func (r *Repository) LikeReply(topicID, replyID int64) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	topic := r.findLocked(topicID)
	if topic == nil {
		return 0, false
	}
	reply := topic.FindReply(replyID)
	if reply == nil {
		return 0, false
	}
	reply.Likes++
	if err := r.persistLocked(); err != nil {
		zap.L().Error("persist after like failed", zap.Int64("topic_id", topicID), zap.Error(err))
	}
	return reply.Likes, true
}

// IncreaseViews 浏览计数 +1
// 每次打开详情都会计数，同一访客重复浏览重复计数
func (r *Repository) IncreaseViews(topicID int64) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	topic := r.findLocked(topicID)
	if topic == nil {
		return 0, false
	}
	topic.Views++
	if err := r.persistLocked(); err != nil {
		zap.L().Error("persist after view failed", zap.Int64("topic_id", topicID), zap.Error(err))
	}
	return topic.Views, true
}

// DeleteTopic 删除话题
// 只有作者本人可以删除，且必须经过 confirm 确认；任何前置条件不满足集合保持不变
func (r *Repository) DeleteTopic(actor *models.User, topicID int64, confirm Confirmer) (bool, error) {
	if actor == nil {
		r.notify.Warning("请先登录")
		return false, errorx.ErrNeedLogin
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, t := range r.topics {
		if t.ID == topicID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}
	if r.topics[idx].Author.UserID != actor.UserID {
		r.notify.Warning("只能删除自己发布的话题")
		return false, errorx.ErrNotOwner
	}

	ok := confirm.Confirm(ConfirmRequest{
		Title:       "删除话题",
		Message:     "删除后不可恢复，确定要删除这个话题吗？",
		ConfirmText: "删除",
		CancelText:  "取消",
	})
	if !ok {
		return false, nil
	}

	r.topics = append(r.topics[:idx], r.topics[idx+1:]...)
	if err := r.persistLocked(); err != nil {
		return false, err
	}
	r.notify.Success("话题已删除")
	return true, nil
}

// DeleteReply 删除回复，规则与 DeleteTopic 一致
func (r *Repository) DeleteReply(actor *models.User, topicID, replyID int64, confirm Confirmer) (bool, error) {
	if actor == nil {
		r.notify.Warning("请先登录")
		return false, errorx.ErrNeedLogin
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	topic := r.findLocked(topicID)
	if topic == nil {
		return false, nil
	}
	idx := -1
	for i, rp := range topic.Replies {
		if rp.ID == replyID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}
	if topic.Replies[idx].Author.UserID != actor.UserID {
		r.notify.Warning("只能删除自己发布的回复")
		return false, errorx.ErrNotOwner
	}

	ok := confirm.Confirm(ConfirmRequest{
		Title:       "删除回复",
		Message:     "确定要删除这条回复吗？",
		ConfirmText: "删除",
		CancelText:  "取消",
	})
	if !ok {
		return false, nil
	}

	topic.Replies = append(topic.Replies[:idx], topic.Replies[idx+1:]...)
	if err := r.persistLocked(); err != nil {
		return false, err
	}
	r.notify.Success("回复已删除")
	return true, nil
}

// Get 按 ID 查找话题，不存在时返回 nil
// 返回的是深拷贝快照，调用方在锁外序列化/读取不会和写入方打架
func (r *Repository) Get(topicID int64) *models.Topic {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.findLocked(topicID)
	if t == nil {
		return nil
	}
	return cloneTopic(t)
}

// GetFiltered 纯查询: 分类过滤 + 标题/正文大小写无关子串搜索 + 排序
// 排序之后再做一次稳定的置顶前移，保证置顶话题无论选哪种排序都排在最前
// 返回的是深拷贝快照，与 Get 的约定一致
func (r *Repository) GetFiltered(category, search, sortMode string) []*models.Topic {
	r.mu.Lock()
	defer r.mu.Unlock()

	kw := strings.ToLower(strings.TrimSpace(search))
	out := make([]*models.Topic, 0, len(r.topics))
	for _, t := range r.topics {
		if category != "" && category != "all" && t.CategoryID != category {
			continue
		}
		if kw != "" &&
			!strings.Contains(strings.ToLower(t.Title), kw) &&
			!strings.Contains(strings.ToLower(t.Content), kw) {
			continue
		}
		out = append(out, cloneTopic(t))
	}

	switch sortMode {
	case models.SortHot:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	case models.SortReplies:
		sort.SliceStable(out, func(i, j int) bool { return len(out[i].Replies) > len(out[j].Replies) })
	default:
		// 默认及 latest: 创建时间倒序
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].IsPinned && !out[j].IsPinned })
	return out
}

// cloneTopic 深拷贝话题
// 读接口把快照交给调用方，集合内部的活指针不出锁
func cloneTopic(t *models.Topic) *models.Topic {
	cp := *t
	cp.Replies = make([]*models.Reply, len(t.Replies))
	for i, rp := range t.Replies {
		rc := *rp
		cp.Replies[i] = &rc
	}
	return &cp
}

// findLocked 调用方必须持有 r.mu
func (r *Repository) findLocked(topicID int64) *models.Topic {
	for _, t := range r.topics {
		if t.ID == topicID {
			return t
		}
	}
	return nil
}

// persistLocked 整体写回话题集合，调用方必须持有 r.mu
func (r *Repository) persistLocked() error {
	if err := r.store.Set(store.Key(store.KeyTopics), r.topics); err != nil {
		zap.L().Error("persist topics failed", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}
