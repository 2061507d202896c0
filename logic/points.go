package logic

import (
	"strconv"
	"sync"
	"time"

	"fitforum/dao/store"
	"fitforum/models"
	"fitforum/pkg/metrics"

	"go.uber.org/zap"
)

// Ledger 积分账本
// 按用户维护 {总分, 历史流水}，与话题集合分开持久化
type Ledger struct {
	mu    sync.Mutex
	store store.Store
}

// NewLedger 创建积分账本
func NewLedger(st store.Store) *Ledger {
	return &Ledger{store: st}
}

// Award 给用户记一笔积分
// 新流水头插到历史最前，总分同步累加；对 points 的符号不做校验
func (l *Ledger) Award(userID int64, points int64, reason string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	accounts, err := l.loadLocked()
	if err != nil {
		return err
	}

	key := strconv.FormatInt(userID, 10)
	acct := accounts[key]
	if acct == nil {
		acct = &models.PointsAccount{}
		accounts[key] = acct
	}

	entry := models.PointsEntry{
		Points:    points,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
	acct.History = append([]models.PointsEntry{entry}, acct.History...)
	acct.Total += points

	if err := l.store.Set(store.Key(store.KeyPoints), accounts); err != nil {
		zap.L().Error("persist points failed", zap.Int64("user_id", userID), zap.Error(err))
		return err
	}

	metrics.PointsAwarded.Add(float64(points))
	return nil
}

// GetTotal 查询用户积分总额，未知用户返回 0
func (l *Ledger) GetTotal(userID int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	accounts, err := l.loadLocked()
	if err != nil {
		return 0
	}
	acct := accounts[strconv.FormatInt(userID, 10)]
	if acct == nil {
		return 0
	}
	return acct.Total
}

// History 查询用户积分流水，最新的在最前
func (l *Ledger) History(userID int64) []models.PointsEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	accounts, err := l.loadLocked()
	if err != nil {
		return nil
	}
	acct := accounts[strconv.FormatInt(userID, 10)]
	if acct == nil {
		return nil
	}
	return acct.History
}

// loadLocked 调用方必须持有 l.mu
func (l *Ledger) loadLocked() (map[string]*models.PointsAccount, error) {
	accounts := make(map[string]*models.PointsAccount)
	if _, err := l.store.Get(store.Key(store.KeyPoints), &accounts); err != nil {
		zap.L().Error("load points failed", zap.Error(err))
		return nil, err
	}
	return accounts, nil
}
