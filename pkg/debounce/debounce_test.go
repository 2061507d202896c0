package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebounce(t *testing.T) {
	var calls int64
	fn := New(50*time.Millisecond, func() { atomic.AddInt64(&calls, 1) })

	// 连续触发只会执行最后一次
	for i := 0; i < 10; i++ {
		fn()
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))
}

func TestDebounceFiresAgainAfterQuiet(t *testing.T) {
	var calls int64
	fn := New(30*time.Millisecond, func() { atomic.AddInt64(&calls, 1) })

	fn()
	time.Sleep(100 * time.Millisecond)
	fn()
	time.Sleep(100 * time.Millisecond)

	assert.EqualValues(t, 2, atomic.LoadInt64(&calls))
}

func TestThrottle(t *testing.T) {
	var calls int64
	fn := NewThrottle(50*time.Millisecond, func() { atomic.AddInt64(&calls, 1) })

	// 窗口内的多余调用被丢弃
	for i := 0; i < 10; i++ {
		fn()
	}
	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))

	time.Sleep(80 * time.Millisecond)
	fn()
	assert.EqualValues(t, 2, atomic.LoadInt64(&calls))
}
