package cart

import (
	"strings"
	"sync"
	"time"
)

// Registry 按会话管理购物车
// 购物车只保存在内存中，进程重启即丢失；长时间无访问的购物车由 Sweep 回收
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	onNew   func(sessionID string, store *Store)
	now     func() time.Time
}

type registryEntry struct {
	store   *Store
	touched time.Time
}

// NewRegistry 创建购物车注册表
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		now:     time.Now,
	}
}

// OnCreate 设置新建购物车时的回调（用于挂载观察者）
func (r *Registry) OnCreate(fn func(sessionID string, store *Store)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onNew = fn
}

// Get 获取会话购物车，不存在时创建；每次访问刷新活跃时间
func (r *Registry) Get(sessionID string) *Store {
	sessionID = strings.TrimSpace(sessionID)
	r.mu.Lock()
	now := r.now()
	if entry, ok := r.entries[sessionID]; ok {
		entry.touched = now
		r.mu.Unlock()
		return entry.store
	}
	store := NewStore()
	r.entries[sessionID] = &registryEntry{store: store, touched: now}
	hook := r.onNew
	r.mu.Unlock()

	if hook != nil {
		hook(sessionID, store)
	}
	return store
}

// Lookup 仅查询，不创建也不刷新活跃时间
func (r *Registry) Lookup(sessionID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[strings.TrimSpace(sessionID)]
	if !ok {
		return nil, false
	}
	return entry.store, true
}

// Rename 把购物车挂到新的会话 ID 下（登录换发会话时使用）
// 目标会话已有购物车时保持不动并返回 false
func (r *Registry) Rename(from, to string) bool {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" || from == to {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[from]
	if !ok {
		return false
	}
	if _, taken := r.entries[to]; taken {
		return false
	}
	delete(r.entries, from)
	entry.touched = r.now()
	r.entries[to] = entry
	return true
}

// Drop 丢弃会话购物车
func (r *Registry) Drop(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessionID = strings.TrimSpace(sessionID)
	if _, ok := r.entries[sessionID]; !ok {
		return false
	}
	delete(r.entries, sessionID)
	return true
}

// Sweep 回收超过 maxIdle 未访问的购物车，返回被回收的会话 ID
// keep 返回 true 的会话跳过（例如结账仍在进行）
func (r *Registry) Sweep(maxIdle time.Duration, keep func(sessionID string) bool) []string {
	if maxIdle <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-maxIdle)
	var evicted []string
	for sessionID, entry := range r.entries {
		if entry.touched.After(cutoff) {
			continue
		}
		if keep != nil && keep(sessionID) {
			continue
		}
		delete(r.entries, sessionID)
		evicted = append(evicted, sessionID)
	}
	return evicted
}

// Len 当前购物车数量
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
