package backend

import (
	"context"
	"net/http"
)

// Login 用户登录
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	in := map[string]string{"email": email, "password": password}
	if err := c.call(ctx, http.MethodPost, "/api/login", in, &out); err != nil {
		return nil, err
	}
	if out.User.UserID == 0 {
		return nil, invalidResponse("login user missing")
	}
	return &out, nil
}

// Register 用户注册
func (c *Client) Register(ctx context.Context, input RegisterInput) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/register", input, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ListUsers 用户列表（管理端）
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out struct {
		Users []User `json:"users"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}
