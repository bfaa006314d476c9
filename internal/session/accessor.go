package session

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/kantin-next/internal/logger"
)

// Accessor 会话记录的唯一读写入口
// 读取到无法解析的数据时删除并视为未登录
type Accessor struct {
	store Store
	ttl   time.Duration
}

// NewAccessor 创建会话记录访问器
func NewAccessor(store Store, ttl time.Duration) *Accessor {
	return &Accessor{store: store, ttl: ttl}
}

// Current 返回当前会话记录，未登录时返回 nil, nil
func (a *Accessor) Current(ctx context.Context, sessionID string) (*Record, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, nil
	}
	raw, ok, err := a.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		a.discard(ctx, sessionID, err)
		return nil, nil
	}
	if err := record.Validate(); err != nil {
		a.discard(ctx, sessionID, err)
		return nil, nil
	}
	return &record, nil
}

// Save 保存会话记录
func (a *Accessor) Save(ctx context.Context, sessionID string, record *Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, strings.TrimSpace(sessionID), payload, a.ttl)
}

// Delete 删除会话记录
func (a *Accessor) Delete(ctx context.Context, sessionID string) error {
	return a.store.Del(ctx, strings.TrimSpace(sessionID))
}

func (a *Accessor) discard(ctx context.Context, sessionID string, cause error) {
	logger.Warnw("session_record_corrupt",
		"session_id", sessionID,
		"error", cause,
	)
	if err := a.store.Del(ctx, sessionID); err != nil {
		logger.Warnw("session_record_delete_failed",
			"session_id", sessionID,
			"error", err,
		)
	}
}
