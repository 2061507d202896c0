package logic

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"fitforum/dao/store"
	"fitforum/models"
	"fitforum/pkg/errorx"
	"fitforum/pkg/snowflake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := snowflake.Init("2024-01-01", 1); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// stubNotifier 记录所有通知，便于断言警告是否弹出
type stubNotifier struct {
	warnings  []string
	successes []string
}

func (n *stubNotifier) Warning(msg string) { n.warnings = append(n.warnings, msg) }
func (n *stubNotifier) Success(msg string) { n.successes = append(n.successes, msg) }

func confirmWith(ok bool) Confirmer {
	return ConfirmerFunc(func(ConfirmRequest) bool { return ok })
}

func newTestRepo(t *testing.T) (*Repository, *Ledger, *store.MemoryStore, *stubNotifier) {
	t.Helper()
	st := store.NewMemory()
	notify := &stubNotifier{}
	ledger := NewLedger(st)
	return NewRepository(st, ledger, notify), ledger, st, notify
}

func testUser(id int64, name string) *models.User {
	return &models.User{UserID: id, Username: name, Nickname: name, Level: 1}
}

func TestInitializeSeedsEmptyStore(t *testing.T) {
	repo, _, st, _ := newTestRepo(t)

	require.NoError(t, repo.Initialize())
	seeded := repo.GetFiltered("", "", "")
	require.NotEmpty(t, seeded)

	// 再次 Initialize 不会重新播种
	require.NoError(t, repo.Initialize())
	assert.Len(t, repo.GetFiltered("", "", ""), len(seeded))

	// 种子数据已经持久化
	var persisted []*models.Topic
	found, err := st.Get(store.Key(store.KeyTopics), &persisted)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, persisted, len(seeded))
}

func TestCreateTopicRequiresLogin(t *testing.T) {
	repo, _, _, notify := newTestRepo(t)

	topic, err := repo.CreateTopic(nil, "training", "标题", "内容")
	assert.Nil(t, topic)
	assert.ErrorIs(t, err, errorx.ErrNeedLogin)
	assert.NotEmpty(t, notify.warnings)
	assert.Empty(t, repo.GetFiltered("", "", ""))
}

func TestCreateTopic(t *testing.T) {
	repo, _, _, _ := newTestRepo(t)
	u := testUser(1, "u1")

	first, err := repo.CreateTopic(u, "training", "第一个", "内容A")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.EqualValues(t, 0, first.Views)
	assert.EqualValues(t, 0, first.Likes)
	assert.Empty(t, first.Replies)
	assert.Equal(t, u.UserID, first.Author.UserID)

	second, err := repo.CreateTopic(u, "qa", "第二个", "内容B")
	require.NoError(t, err)

	// 新话题头插，集合天然按创建时间倒序
	all := repo.GetFiltered("", "", "")
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestCreateTopicUnknownCategory(t *testing.T) {
	repo, _, _, _ := newTestRepo(t)

	topic, err := repo.CreateTopic(testUser(1, "u1"), "nosuch", "标题", "内容")
	assert.Nil(t, topic)
	assert.ErrorIs(t, err, errorx.ErrInvalidCategory)
}

func TestAddReply(t *testing.T) {
	repo, _, _, _ := newTestRepo(t)
	u := testUser(1, "u1")

	topic, err := repo.CreateTopic(u, "training", "标题", "内容")
	require.NoError(t, err)

	r1, err := repo.AddReply(u, topic.ID, "先占个楼")
	require.NoError(t, err)
	require.NotNil(t, r1)
	r2, err := repo.AddReply(u, topic.ID, "再补一句")
	require.NoError(t, err)

	got := repo.Get(topic.ID)
	require.Len(t, got.Replies, 2)
	// 回复保持插入顺序
	assert.Equal(t, r1.ID, got.Replies[0].ID)
	assert.Equal(t, r2.ID, got.Replies[1].ID)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestAddReplyUnknownTopic(t *testing.T) {
	repo, _, _, _ := newTestRepo(t)

	// 话题不存在时静默空操作
	reply, err := repo.AddReply(testUser(1, "u1"), 404404, "没人看得到")
	assert.Nil(t, reply)
	assert.NoError(t, err)
}

func TestAddReplyRequiresLogin(t *testing.T) {
	repo, _, _, notify := newTestRepo(t)

	reply, err := repo.AddReply(nil, 1, "匿名回复")
	assert.Nil(t, reply)
	assert.ErrorIs(t, err, errorx.ErrNeedLogin)
	assert.NotEmpty(t, notify.warnings)
}

func TestLikeTopicCountsExactly(t *testing.T) {
	repo, _, _, _ := newTestRepo(t)
	topic, err := repo.CreateTopic(testUser(1, "u1"), "training", "标题", "内容")
	require.NoError(t, err)

	const n = 5
	var last int64
	for i := 0; i < n; i++ {
		likes, ok := repo.LikeTopic(topic.ID)
		require.True(t, ok)
		last = likes
	}
	assert.EqualValues(t, n, last)
	assert.EqualValues(t, n, repo.Get(topic.ID).Likes)

	// 未知 ID 是空操作
	likes, ok := repo.LikeTopic(999999)
	assert.False(t, ok)
	assert.Zero(t, likes)
}

func TestLikeReply(t *testing.T) {
	repo, _, _, _ := newTestRepo(t)
	u := testUser(1, "u1")
	topic, err := repo.CreateTopic(u, "training", "标题", "内容")
	require.NoError(t, err)
	reply, err := repo.AddReply(u, topic.ID, "沙发")
	require.NoError(t, err)

	likes, ok := repo.LikeReply(topic.ID, reply.ID)
	require.True(t, ok)
	assert.EqualValues(t, 1, likes)

	_, ok = repo.LikeReply(topic.ID, 123456)
	assert.False(t, ok)
}

func TestIncreaseViewsNoDedup(t *testing.T) {
	repo, _, _, _ := newTestRepo(t)
	topic, err := repo.CreateTopic(testUser(1, "u1"), "training", "标题", "内容")
	require.NoError(t, err)

	// 同一访客重复浏览也重复计数
	for i := 0; i < 3; i++ {
		views, ok := repo.IncreaseViews(topic.ID)
		require.True(t, ok)
		assert.EqualValues(t, i+1, views)
	}
}

func TestDeleteTopicAuthorization(t *testing.T) {
	author := testUser(1, "author")
	other := testUser(2, "other")

	tests := []struct {
		name      string
		actor     *models.User
		confirmed bool
		wantErr   error
		wantGone  bool
	}{
		{"非作者删除", other, true, errorx.ErrNotOwner, false},
		{"作者取消确认", author, false, nil, false},
		{"作者确认删除", author, true, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, _, _ := newTestRepo(t)
			topic, err := repo.CreateTopic(author, "training", "标题", "内容")
			require.NoError(t, err)

			deleted, err := repo.DeleteTopic(tt.actor, topic.ID, confirmWith(tt.confirmed))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantGone, deleted)
			if tt.wantGone {
				assert.Nil(t, repo.Get(topic.ID))
			} else {
				assert.NotNil(t, repo.Get(topic.ID))
			}
		})
	}
}

func TestDeleteTopicUnknownID(t *testing.T) {
	repo, _, _, _ := newTestRepo(t)

	deleted, err := repo.DeleteTopic(testUser(1, "u1"), 42, confirmWith(true))
	assert.False(t, deleted)
	assert.NoError(t, err)
}

func TestDeleteReply(t *testing.T) {
	repo, _, _, _ := newTestRepo(t)
	author := testUser(1, "author")
	other := testUser(2, "other")

	topic, err := repo.CreateTopic(author, "training", "标题", "内容")
	require.NoError(t, err)
	reply, err := repo.AddReply(other, topic.ID, "我的回复")
	require.NoError(t, err)

	// 话题作者也删不掉别人的回复
	deleted, err := repo.DeleteReply(author, topic.ID, reply.ID, confirmWith(true))
	assert.False(t, deleted)
	assert.ErrorIs(t, err, errorx.ErrNotOwner)

	deleted, err = repo.DeleteReply(other, topic.ID, reply.ID, confirmWith(true))
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, repo.Get(topic.ID).Replies)
}

func TestGetFiltered(t *testing.T) {
	repo, _, _, _ := newTestRepo(t)
	u := testUser(1, "u1")

	tTrain, err := repo.CreateTopic(u, "training", "深蹲姿势求指导", "今天练腿")
	require.NoError(t, err)
	tFood, err := repo.CreateTopic(u, "nutrition", "增肌餐怎么搭配", "鸡胸肉吃腻了")
	require.NoError(t, err)
	tPinned, err := repo.CreateTopic(u, "qa", "社区公告", "发帖前请先看这里")
	require.NoError(t, err)

	// 手工调整计数和置顶位，GetFiltered 是纯查询不关心来源
	// 读接口返回的是快照，改集合内部状态要直接持锁操作
	setTopic := func(id int64, fn func(*models.Topic)) {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		fn(repo.findLocked(id))
	}
	setTopic(tTrain.ID, func(tp *models.Topic) { tp.Views = 100 })
	setTopic(tFood.ID, func(tp *models.Topic) { tp.Views = 50 })
	setTopic(tPinned.ID, func(tp *models.Topic) { tp.IsPinned = true })
	_, err = repo.AddReply(u, tFood.ID, "蛋白粉冲一杯")
	require.NoError(t, err)

	t.Run("分类过滤", func(t *testing.T) {
		got := repo.GetFiltered("training", "", "")
		require.Len(t, got, 1)
		assert.Equal(t, tTrain.ID, got[0].ID)
	})

	t.Run("搜索大小写无关", func(t *testing.T) {
		got := repo.GetFiltered("", "深蹲", "")
		require.Len(t, got, 1)
		assert.Equal(t, tTrain.ID, got[0].ID)
	})

	t.Run("hot按浏览量非增排序", func(t *testing.T) {
		got := repo.GetFiltered("", "", models.SortHot)
		require.Len(t, got, 3)
		// 置顶话题永远在最前
		assert.Equal(t, tPinned.ID, got[0].ID)
		for i := 1; i < len(got)-1; i++ {
			assert.GreaterOrEqual(t, got[i].Views, got[i+1].Views)
		}
	})

	t.Run("replies按回复数非增排序", func(t *testing.T) {
		got := repo.GetFiltered("", "", models.SortReplies)
		require.Len(t, got, 3)
		assert.Equal(t, tPinned.ID, got[0].ID)
		assert.Equal(t, tFood.ID, got[1].ID)
	})

	t.Run("latest按创建时间倒序", func(t *testing.T) {
		got := repo.GetFiltered("", "", models.SortLatest)
		require.Len(t, got, 3)
		assert.Equal(t, tPinned.ID, got[0].ID)
		for i := 1; i < len(got)-1; i++ {
			assert.False(t, got[i].CreatedAt.Before(got[i+1].CreatedAt))
		}
	})
}

func TestEndToEndPoints(t *testing.T) {
	repo, ledger, _, _ := newTestRepo(t)
	u := testUser(1, "u1")

	topic, err := repo.CreateTopic(u, "training", "T", "C")
	require.NoError(t, err)
	_, err = repo.AddReply(u, topic.ID, "nice")
	require.NoError(t, err)
	likes, ok := repo.LikeTopic(topic.ID)
	require.True(t, ok)

	all := repo.GetFiltered("", "", "")
	require.Len(t, all, 1)
	assert.Len(t, all[0].Replies, 1)
	assert.EqualValues(t, 1, likes)
	// 发帖 10 分 + 回复 5 分
	assert.EqualValues(t, 15, ledger.GetTotal(u.UserID))
}

func TestRepositorySurvivesRestart(t *testing.T) {
	st := store.NewMemory()
	ledger := NewLedger(st)
	repo := NewRepository(st, ledger, &stubNotifier{})
	u := testUser(1, "u1")

	topic, err := repo.CreateTopic(u, "training", "标题", "内容")
	require.NoError(t, err)
	repo.LikeTopic(topic.ID)

	// 用同一个存储重建仓库，模拟进程重启
	repo2 := NewRepository(st, NewLedger(st), &stubNotifier{})
	require.NoError(t, repo2.Initialize())

	got := repo2.Get(topic.ID)
	require.NotNil(t, got)
	assert.EqualValues(t, 1, got.Likes)

	// 有数据时 Initialize 不播种
	assert.Len(t, repo2.GetFiltered("", "", ""), 1)
}

func TestReadsReturnSnapshots(t *testing.T) {
	repo, _, _, _ := newTestRepo(t)
	u := testUser(1, "u1")
	topic, err := repo.CreateTopic(u, "training", "标题", "内容")
	require.NoError(t, err)
	_, err = repo.AddReply(u, topic.ID, "沙发")
	require.NoError(t, err)

	snap := repo.Get(topic.ID)
	require.Len(t, snap.Replies, 1)

	// 集合后续变化不会体现在已取出的快照上
	repo.LikeTopic(topic.ID)
	repo.LikeReply(topic.ID, snap.Replies[0].ID)
	assert.Zero(t, snap.Likes)
	assert.Zero(t, snap.Replies[0].Likes)

	// 改快照也影响不到集合
	snap.Title = "改标题"
	snap.Replies[0].Content = "改回复"
	got := repo.Get(topic.ID)
	assert.Equal(t, "标题", got.Title)
	assert.Equal(t, "沙发", got.Replies[0].Content)
	assert.EqualValues(t, 1, got.Likes)
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	repo, _, _, _ := newTestRepo(t)
	u := testUser(1, "u1")
	topic, err := repo.CreateTopic(u, "training", "标题", "内容")
	require.NoError(t, err)

	// 写入进行中的并发读拿到的快照可以放心在锁外序列化
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			repo.LikeTopic(topic.ID)
			repo.IncreaseViews(topic.ID)
		}
	}()
	for i := 0; i < 50; i++ {
		_, err := json.Marshal(repo.GetFiltered("", "", ""))
		require.NoError(t, err)
		if d := repo.Get(topic.ID); d != nil {
			_, err = json.Marshal(d)
			require.NoError(t, err)
		}
	}
	<-done

	assert.EqualValues(t, 200, repo.Get(topic.ID).Likes)
}

func TestConcurrentLikes(t *testing.T) {
	repo, _, _, _ := newTestRepo(t)
	topic, err := repo.CreateTopic(testUser(1, "u1"), "training", "标题", "内容")
	require.NoError(t, err)

	const goroutines = 16
	const perGoroutine = 10
	done := make(chan struct{})
	for i := 0; i < goroutines; i++ {
		go func() {
			for j := 0; j < perGoroutine; j++ {
				repo.LikeTopic(topic.ID)
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < goroutines; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for goroutines")
		}
	}

	assert.EqualValues(t, goroutines*perGoroutine, repo.Get(topic.ID).Likes)
}
