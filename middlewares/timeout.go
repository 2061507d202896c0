package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"fitforum/controller"
	"fitforum/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// timeoutWriter 包装 gin 的 ResponseWriter
// 超时分支写完响应之后置位 timedOut，迟到的 Handler goroutine 再写入时被丢弃，
// 避免两个 goroutine 同时向同一个连接写响应
type timeoutWriter struct {
	gin.ResponseWriter
	mu       sync.Mutex
	timedOut bool
}

func (w *timeoutWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *timeoutWriter) WriteHeaderNow() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.ResponseWriter.WriteHeaderNow()
}

func (w *timeoutWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *timeoutWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// writeTimeoutResponse 抢在迟到的 Handler 之前写超时响应并封口
func (w *timeoutWriter) writeTimeoutResponse() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.timedOut && !w.ResponseWriter.Written() {
		w.ResponseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.ResponseWriter.WriteHeader(http.StatusOK)
		body, _ := json.Marshal(&controller.ResponseData{
			Code: errorx.CodeServerBusy,
			Msg:  "请求超时",
		})
		w.ResponseWriter.Write(body) //nolint: errcheck
	}
	w.timedOut = true
}

// TimeoutMiddleware 请求超时中间件，防止慢请求长时间占用资源
func TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		tw := &timeoutWriter{ResponseWriter: c.Writer}
		c.Writer = tw

		finished := make(chan struct{})
		go func() {
			c.Next()
			close(finished)
		}()

		select {
		case <-finished:
			return
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				tw.writeTimeoutResponse()
				c.Abort()
			}
			return
		}
	}
}
