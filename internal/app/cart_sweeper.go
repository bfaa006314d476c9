package app

import (
	"context"
	"sync"
	"time"
)

// CartSweeper 定期回收空闲购物车
type CartSweeper struct {
	interval time.Duration
	sweep    func() int

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewCartSweeper sweep 返回本轮回收数量
func NewCartSweeper(interval time.Duration, sweep func() int) *CartSweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CartSweeper{interval: interval, sweep: sweep, stopped: make(chan struct{})}
}

func (s *CartSweeper) Name() string { return "cart-sweeper" }

// Start 按周期执行回收，ctx 取消或 Stop 后返回
func (s *CartSweeper) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stopped:
			return nil
		case <-ticker.C:
			s.sweep()
		}
	}
}

// Stop 可重复调用
func (s *CartSweeper) Stop(context.Context) error {
	s.stopOnce.Do(func() { close(s.stopped) })
	return nil
}
