package backend

import (
	"context"
	"fmt"
	"net/http"
)

// CreateOrder 提交订单，每次调用只发送一次请求
func (c *Client) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	var out CreateOrderResult
	if err := c.call(ctx, http.MethodPost, "/api/orders", input, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &APIError{Status: http.StatusOK}
	}
	return &out, nil
}

// ListOrders 订单列表（管理端）
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out struct {
		Orders []Order `json:"orders"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// UpdateOrderStatus 修改订单状态
func (c *Client) UpdateOrderStatus(ctx context.Context, id uint, status string) (*Order, error) {
	var out struct {
		Order *Order `json:"order"`
	}
	in := map[string]string{"status": status}
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/api/orders/%d", id), in, &out); err != nil {
		return nil, err
	}
	return out.Order, nil
}

// OrderHistory 用户历史订单
func (c *Client) OrderHistory(ctx context.Context, userID uint) ([]Order, error) {
	var out struct {
		Orders []Order `json:"orders"`
	}
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/orders/history/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func invalidResponse(reason string) error {
	return fmt.Errorf("%w: %s", ErrResponseInvalid, reason)
}
