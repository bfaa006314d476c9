package service

import (
	"context"
	"strings"

	"github.com/kantin-next/internal/backend"
	"github.com/kantin-next/internal/constants"
)

// OrderBackend 后端订单接口
type OrderBackend interface {
	ListOrders(ctx context.Context) ([]backend.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status string) (*backend.Order, error)
	OrderHistory(ctx context.Context, userID uint) ([]backend.Order, error)
}

// OrderService 订单查询与状态管理
type OrderService struct {
	backend OrderBackend
}

// NewOrderService 创建订单服务
func NewOrderService(b OrderBackend) *OrderService {
	return &OrderService{backend: b}
}

// History 用户历史订单
func (s *OrderService) History(ctx context.Context, userID uint) ([]backend.Order, error) {
	return s.backend.OrderHistory(ctx, userID)
}

// ListAdmin 管理端订单列表，status 为空时返回全部
func (s *OrderService) ListAdmin(ctx context.Context, status string) ([]backend.Order, error) {
	orders, err := s.backend.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return orders, nil
	}
	filtered := make([]backend.Order, 0, len(orders))
	for _, order := range orders {
		if strings.EqualFold(order.Status, status) {
			filtered = append(filtered, order)
		}
	}
	return filtered, nil
}

// UpdateStatus 修改订单状态
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*backend.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if id == 0 || !isOrderStatusSupported(status) {
		return nil, ErrOrderStatusInvalid
	}
	return s.backend.UpdateOrderStatus(ctx, id, status)
}

func isOrderStatusSupported(status string) bool {
	for _, candidate := range constants.OrderStatuses() {
		if candidate == status {
			return true
		}
	}
	return false
}
