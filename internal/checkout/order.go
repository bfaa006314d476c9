package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kantin-next/internal/backend"
	"github.com/kantin-next/internal/models"
)

var (
	// ErrOrderRejected 后端拒绝订单，错误信息为后端原文
	ErrOrderRejected = errors.New("order rejected")
	// ErrOrderFailed 下单失败且没有可展示的后端信息
	ErrOrderFailed = errors.New("order submission failed")
)

// OrderItem 下单条目
type OrderItem struct {
	ItemID   uint `json:"item_id"`
	Quantity int  `json:"quantity"`
}

// OrderRequest 一次下单请求
type OrderRequest struct {
	UserID        uint
	Items         []OrderItem
	PaymentMethod string
	TotalAmount   models.Money
}

// OrderResult 下单结果
type OrderResult struct {
	OrderID     uint         `json:"order_id"`
	TotalAmount models.Money `json:"total_amount"`
	Status      string       `json:"status"`
}

// OrderAPI 订单接口
type OrderAPI interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error)
}

// Attempt 一次发往后端的下单尝试
type Attempt struct {
	SessionID     string
	UserID        uint
	OrderID       uint
	PaymentMethod string
	ItemCount     int
	TotalAmount   models.Money
	Result        string
	ErrorMessage  string
	Duration      time.Duration
	At            time.Time
}

// Recorder 下单尝试记录器
type Recorder interface {
	RecordAttempt(ctx context.Context, attempt Attempt)
}

// RejectedError 后端拒绝订单
type RejectedError struct {
	Message string
	cause   error
}

func (e *RejectedError) Error() string {
	return e.Message
}

func (e *RejectedError) Unwrap() []error {
	return []error{ErrOrderRejected, e.cause}
}

// ServerMessage 提取后端拒绝原因
func ServerMessage(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message
	}
	return ""
}

// classify 将下单错误归类：有后端原文时为拒绝，否则为通用失败
func classify(err error) error {
	if err == nil {
		return nil
	}
	if message := backend.MessageOf(err); message != "" {
		return &RejectedError{Message: message, cause: err}
	}
	return fmt.Errorf("%w: %v", ErrOrderFailed, err)
}

// BackendOrders 使用食堂后端下单
type BackendOrders struct {
	client *backend.Client
}

// NewBackendOrders 创建后端下单适配器
func NewBackendOrders(client *backend.Client) *BackendOrders {
	return &BackendOrders{client: client}
}

// CreateOrder 提交订单
func (b *BackendOrders) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error) {
	items := make([]backend.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, backend.OrderItem{MenuID: item.ItemID, Jumlah: item.Quantity})
	}
	result, err := b.client.CreateOrder(ctx, backend.CreateOrderInput{
		UserID:     req.UserID,
		Items:      items,
		Pembayaran: req.PaymentMethod,
		TotalHarga: req.TotalAmount,
	})
	if err != nil {
		return nil, err
	}
	total := result.TotalHarga
	if total.IsZero() {
		total = result.Order.TotalHarga
	}
	return &OrderResult{
		OrderID:     result.Order.OrderID,
		TotalAmount: total,
		Status:      result.Order.Status,
	}, nil
}
