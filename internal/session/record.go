package session

import (
	"errors"
	"strings"
	"time"

	"github.com/kantin-next/internal/constants"
)

var (
	// ErrUnauthenticated 当前会话未登录
	ErrUnauthenticated = errors.New("session is not authenticated")
	// ErrRecordInvalid 会话记录不完整
	ErrRecordInvalid = errors.New("session record invalid")
	// ErrTokenInvalid 会话令牌无效
	ErrTokenInvalid = errors.New("session token invalid")
)

// Record 已登录用户的会话记录
type Record struct {
	UserID      uint      `json:"user_id"`
	DisplayName string    `json:"nama_lengkap"`
	Email       string    `json:"email"`
	RoleID      int       `json:"role_id,omitempty"`
	Role        string    `json:"role"`
	LoggedInAt  time.Time `json:"logged_in_at"`
}

// IsAdmin 是否管理员
func (r *Record) IsAdmin() bool {
	return r != nil && r.Role == constants.RoleAdmin
}

// Validate 校验记录字段
func (r *Record) Validate() error {
	if r == nil || r.UserID == 0 {
		return ErrRecordInvalid
	}
	switch r.Role {
	case constants.RoleCustomer, constants.RoleAdmin:
		return nil
	default:
		return ErrRecordInvalid
	}
}

// ResolveRole 由后端返回的角色名或角色 ID 推导统一角色
func ResolveRole(roleName string, roleID, adminRoleID int) string {
	switch strings.ToLower(strings.TrimSpace(roleName)) {
	case constants.RoleAdmin:
		return constants.RoleAdmin
	case constants.RoleCustomer:
		return constants.RoleCustomer
	}
	if adminRoleID > 0 && roleID == adminRoleID {
		return constants.RoleAdmin
	}
	return constants.RoleCustomer
}

// RequireAuth 要求会话已登录
func RequireAuth(record *Record) error {
	if record == nil || record.UserID == 0 {
		return ErrUnauthenticated
	}
	return nil
}
