package session

import (
	"context"
	"sync"
)

// Event 会话事件
// 登录事件里 SessionID 是换发后的新会话，PreviousSessionID 是登录前的访客会话
type Event struct {
	Kind              string
	SessionID         string
	PreviousSessionID string
	UserID            uint
}

// Handler 事件处理函数
type Handler func(ctx context.Context, event Event)

type subscription struct {
	id uint64
	fn Handler
}

// Bus 容器内的会话事件总线，按订阅顺序同步分发
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]subscription
	nextID   uint64
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]subscription)}
}

// Subscribe 订阅事件，返回取消函数
func (b *Bus) Subscribe(kind string, fn Handler) func() {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[kind] = append(b.handlers[kind], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			subs := b.handlers[kind]
			for i, sub := range subs {
				if sub.id == id {
					b.handlers[kind] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish 发布事件
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Kind]))
	copy(subs, b.handlers[event.Kind])
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(ctx, event)
	}
}
