package debounce

import (
	"sync"
	"time"
)

// New 创建一个防抖函数
// 返回的函数被连续调用时，只有在最后一次调用之后过了 interval 才执行 fn
// 常用于搜索框输入等高频触发场景
func New(interval time.Duration, fn func()) func() {
	var mu sync.Mutex
	var timer *time.Timer

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(interval, fn)
	}
}

// NewThrottle 创建一个节流函数
// 返回的函数在每个 interval 窗口内最多执行 fn 一次，窗口内的多余调用被丢弃
func NewThrottle(interval time.Duration, fn func()) func() {
	var mu sync.Mutex
	var last time.Time

	return func() {
		mu.Lock()
		defer mu.Unlock()
		now := time.Now()
		if now.Sub(last) < interval {
			return
		}
		last = now
		fn()
	}
}
