package middleware

import (
	"fmt"
	"sync"
	"time"

	"gofoody-ai/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter 令牌桶限流器
type RateLimiter struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64
	lastTime time.Time
	now      func() time.Time
}

// NewRateLimiter 建立限流器：window 內最多 requests 次
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:   float64(requests),
		capacity: float64(requests),
		rate:     float64(requests) / window.Seconds(),
		lastTime: time.Now(),
		now:      time.Now,
	}
}

// Allow 是否允許請求
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	elapsed := now.Sub(rl.lastTime).Seconds()
	rl.lastTime = now

	rl.tokens += elapsed * rl.rate
	if rl.tokens > rl.capacity {
		rl.tokens = rl.capacity
	}

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// idle 自上次請求以來經過的時間
func (rl *RateLimiter) idle(now time.Time) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return now.Sub(rl.lastTime)
}

// clientLimiters 每個客戶端 IP 各自的限流器；閒置超過一個視窗的條目令牌已補滿，
// 可直接清除
type clientLimiters struct {
	mu        sync.Mutex
	limiters  map[string]*RateLimiter
	requests  int
	window    time.Duration
	lastPrune time.Time
	now       func() time.Time
}

func newClientLimiters(requests int, window time.Duration) *clientLimiters {
	return &clientLimiters{
		limiters:  map[string]*RateLimiter{},
		requests:  requests,
		window:    window,
		lastPrune: time.Now(),
		now:       time.Now,
	}
}

func (cl *clientLimiters) get(ip string) *RateLimiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	if now.Sub(cl.lastPrune) >= cl.window {
		cl.prune(now)
	}

	l, ok := cl.limiters[ip]
	if !ok {
		l = NewRateLimiter(cl.requests, cl.window)
		l.now = cl.now
		l.lastTime = now
		cl.limiters[ip] = l
	}
	return l
}

// prune 需持有 cl.mu
func (cl *clientLimiters) prune(now time.Time) {
	for ip, l := range cl.limiters {
		if l.idle(now) >= cl.window {
			delete(cl.limiters, ip)
		}
	}
	cl.lastPrune = now
}

// size 目前追蹤的客戶端數
func (cl *clientLimiters) size() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.limiters)
}

// RateLimit 以客戶端 IP 分別限流
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	clients := newClientLimiters(requests, window)

	return func(c *gin.Context) {
		if !clients.get(c.ClientIP()).Allow() {
			common.LogWarn("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			common.WriteError(c, common.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
