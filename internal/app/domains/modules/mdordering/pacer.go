package mdordering

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer 下单节流器
// 保证相邻两次付费调用的间隔不小于固定值，无论上一次成功与否
type Pacer interface {
	Wait(ctx context.Context) error
}

// RatePacer 基于令牌桶的节流实现
type RatePacer struct {
	limiter *rate.Limiter
}

// NewRatePacer 创建节流器，interval 为相邻调用的最小间隔
func NewRatePacer(interval time.Duration) *RatePacer {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	// 令牌桶初始是满的，先放掉一个令牌，
	// 否则第一次 Wait 直接放行，前两次调用之间没有间隔
	limiter.Allow()
	return &RatePacer{limiter: limiter}
}

// Wait 阻塞到允许下一次调用为止
func (p *RatePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NopPacer 空节流器（测试用）
type NopPacer struct{}

// Wait 立即放行
func (NopPacer) Wait(ctx context.Context) error {
	return nil
}
