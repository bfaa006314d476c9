package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kantin-next/internal/cache"
)

// Store 会话记录的原始存储
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// RedisStore 基于 Redis 的会话存储
type RedisStore struct {
	prefix string
}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore(prefix string) *RedisStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "session"
	}
	return &RedisStore{prefix: prefix}
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":" + key
}

// Get 读取会话记录
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return cache.GetBytes(ctx, s.key(key))
}

// Set 写入会话记录
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return cache.SetBytes(ctx, s.key(key), value, ttl)
}

// Del 删除会话记录
func (s *RedisStore) Del(ctx context.Context, key string) error {
	return cache.Del(ctx, s.key(key))
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore 进程内会话存储，未启用 Redis 时使用
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get 读取会话记录，过期视为不存在
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true, nil
}

// Set 写入会话记录，ttl<=0 表示不过期
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = entry
	return nil
}

// Del 删除会话记录
func (s *MemoryStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
