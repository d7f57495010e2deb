package ratelimit

import (
	"context"
	"math"

	"golang.org/x/time/rate"
)

// RateLimiter 文件系统操作的 QPS 限制器
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter 创建新的速率限制器
// qps: 每秒允许的重命名次数，0 或负数表示不限制；允许小数（如 0.5 表示每两秒一次）
func NewRateLimiter(qps float64) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(limitFor(qps), burstFor(qps))}
}

// Wait 等待直到获得令牌，ctx 取消时返回错误；nil 限制器不等待
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}

// Allow 检查是否允许当前操作，不阻塞
func (r *RateLimiter) Allow() bool {
	if r == nil {
		return true
	}
	return r.limiter.Allow()
}

// SetQPS 动态设置QPS限制（配置热加载时调用）
func (r *RateLimiter) SetQPS(qps float64) {
	r.limiter.SetLimit(limitFor(qps))
	r.limiter.SetBurst(burstFor(qps))
}

// QPS 获取当前QPS限制，0 表示无限制
func (r *RateLimiter) QPS() float64 {
	limit := r.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}

func limitFor(qps float64) rate.Limit {
	if qps <= 0 {
		return rate.Inf
	}
	return rate.Limit(qps)
}

// burstFor 令牌桶大小取整数部分，至少为 1
func burstFor(qps float64) int {
	if qps <= 1 {
		return 1
	}
	return int(math.Floor(qps))
}
