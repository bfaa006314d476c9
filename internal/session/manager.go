package session

import (
	"context"
	"strings"
	"time"

	"github.com/kantin-next/internal/constants"
	"github.com/kantin-next/internal/logger"

	"github.com/google/uuid"
)

// Manager 会话生命周期：访客签发、登录、登出、令牌解析
type Manager struct {
	accessor *Accessor
	tokens   *Tokens
	bus      *Bus
}

// NewManager 创建会话管理器
func NewManager(accessor *Accessor, tokens *Tokens, bus *Bus) *Manager {
	if bus == nil {
		bus = NewBus()
	}
	return &Manager{accessor: accessor, tokens: tokens, bus: bus}
}

// Bus 事件总线
func (m *Manager) Bus() *Bus {
	return m.bus
}

// NewGuest 创建访客会话
func (m *Manager) NewGuest() (string, string, error) {
	sessionID := uuid.NewString()
	token, _, err := m.tokens.Issue(sessionID)
	if err != nil {
		return "", "", err
	}
	return sessionID, token, nil
}

// Resolve 由令牌解析会话 ID
func (m *Manager) Resolve(token string) (string, error) {
	claims, err := m.tokens.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.SessionID, nil
}

// Current 当前会话记录
func (m *Manager) Current(ctx context.Context, sessionID string) (*Record, error) {
	return m.accessor.Current(ctx, sessionID)
}

// Login 登录并换发会话 ID，旧会话记录随即作废
// 登录事件带上旧会话 ID，订阅方据此把购物车迁到新会话
func (m *Manager) Login(ctx context.Context, previousID string, record *Record) (string, string, error) {
	previousID = strings.TrimSpace(previousID)
	if previousID == "" {
		return "", "", ErrTokenInvalid
	}
	if record != nil && record.LoggedInAt.IsZero() {
		record.LoggedInAt = time.Now()
	}
	sessionID := uuid.NewString()
	if err := m.accessor.Save(ctx, sessionID, record); err != nil {
		return "", "", err
	}
	token, _, err := m.tokens.Issue(sessionID)
	if err != nil {
		_ = m.accessor.Delete(ctx, sessionID)
		return "", "", err
	}
	if err := m.accessor.Delete(ctx, previousID); err != nil {
		logger.Warnw("session_login_drop_previous_failed", "session_id", previousID, "error", err)
	}
	logger.Infow("session_login",
		"session_id", sessionID,
		"previous_session_id", previousID,
		"user_id", record.UserID,
		"role", record.Role,
	)
	m.bus.Publish(ctx, Event{
		Kind:              constants.SessionEventLogin,
		SessionID:         sessionID,
		PreviousSessionID: previousID,
		UserID:            record.UserID,
	})
	return sessionID, token, nil
}

// Logout 删除会话记录并广播登出事件
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	var userID uint
	if record, err := m.accessor.Current(ctx, sessionID); err == nil && record != nil {
		userID = record.UserID
	}
	if err := m.accessor.Delete(ctx, sessionID); err != nil {
		return err
	}
	logger.Infow("session_logout", "session_id", sessionID, "user_id", userID)
	m.bus.Publish(ctx, Event{Kind: constants.SessionEventLogout, SessionID: sessionID, UserID: userID})
	return nil
}
