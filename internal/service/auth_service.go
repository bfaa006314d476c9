package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/kantin-next/internal/backend"
	"github.com/kantin-next/internal/session"
)

// AuthBackend 后端登录注册接口
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)
	Register(ctx context.Context, input backend.RegisterInput) (*backend.User, error)
}

// AuthService 登录、注册、登出
// 密码校验由食堂后端完成，网关只保存登录后的会话记录
type AuthService struct {
	backend     AuthBackend
	sessions    *session.Manager
	adminRoleID int
}

// NewAuthService 创建认证服务
func NewAuthService(b AuthBackend, sessions *session.Manager, adminRoleID int) *AuthService {
	return &AuthService{backend: b, sessions: sessions, adminRoleID: adminRoleID}
}

// LoginOutcome 登录结果：换发后的会话与令牌
type LoginOutcome struct {
	Record    *session.Record
	SessionID string
	Token     string
}

// Login 登录并换发会话，购物车由会话事件迁到新会话
func (s *AuthService) Login(ctx context.Context, sessionID, email, password string) (*LoginOutcome, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}
	result, err := s.backend.Login(ctx, normalized, password)
	if err != nil {
		return nil, err
	}
	user := result.User
	record := &session.Record{
		UserID:      user.UserID,
		DisplayName: strings.TrimSpace(user.NamaLengkap),
		Email:       strings.TrimSpace(user.Email),
		RoleID:      user.RoleID,
		Role:        session.ResolveRole(user.RoleName, user.RoleID, s.adminRoleID),
	}
	newSessionID, token, err := s.sessions.Login(ctx, sessionID, record)
	if err != nil {
		return nil, err
	}
	return &LoginOutcome{Record: record, SessionID: newSessionID, Token: token}, nil
}

// Register 注册新用户，不自动登录
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*backend.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(password) == "" {
		return nil, ErrRegisterInvalid
	}
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return s.backend.Register(ctx, backend.RegisterInput{
		NamaLengkap: name,
		Email:       normalized,
		Password:    password,
	})
}

// Logout 登出当前会话
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Logout(ctx, sessionID)
}

// NormalizeEmail 规范化邮箱
func NormalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}
