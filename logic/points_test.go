package logic

import (
	"testing"

	"fitforum/dao/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAward(t *testing.T) {
	ledger := NewLedger(store.NewMemory())

	require.NoError(t, ledger.Award(1, 10, "发布话题"))
	require.NoError(t, ledger.Award(1, 5, "回复话题"))

	assert.EqualValues(t, 15, ledger.GetTotal(1))

	history := ledger.History(1)
	require.Len(t, history, 2)
	// 新流水头插，最新的在最前
	assert.EqualValues(t, 5, history[0].Points)
	assert.Equal(t, "回复话题", history[0].Reason)
	assert.EqualValues(t, 10, history[1].Points)
}

func TestLedgerTotalMatchesHistory(t *testing.T) {
	ledger := NewLedger(store.NewMemory())

	awards := []int64{10, 5, 5, 10, 5}
	for _, p := range awards {
		require.NoError(t, ledger.Award(7, p, "测试"))
	}

	var sum int64
	for _, e := range ledger.History(7) {
		sum += e.Points
	}
	assert.Equal(t, ledger.GetTotal(7), sum)
}

func TestLedgerUnknownUser(t *testing.T) {
	ledger := NewLedger(store.NewMemory())

	assert.Zero(t, ledger.GetTotal(404))
	assert.Empty(t, ledger.History(404))
}

func TestLedgerSeparateAccounts(t *testing.T) {
	ledger := NewLedger(store.NewMemory())

	require.NoError(t, ledger.Award(1, 10, "发布话题"))
	require.NoError(t, ledger.Award(2, 5, "回复话题"))

	assert.EqualValues(t, 10, ledger.GetTotal(1))
	assert.EqualValues(t, 5, ledger.GetTotal(2))
}
