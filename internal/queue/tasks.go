package queue

import (
	"encoding/json"
	"time"

	"github.com/kantin-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCheckoutAttemptStore 结账尝试落库任务
	TaskCheckoutAttemptStore = constants.TaskCheckoutAttemptStore
)

// CheckoutAttemptPayload 结账尝试任务载荷
type CheckoutAttemptPayload struct {
	SessionID     string    `json:"session_id"`
	UserID        uint      `json:"user_id"`
	OrderID       uint      `json:"order_id"`
	PaymentMethod string    `json:"payment_method"`
	ItemCount     int       `json:"item_count"`
	TotalAmount   string    `json:"total_amount"`
	Result        string    `json:"result"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	DurationMS    int64     `json:"duration_ms"`
	At            time.Time `json:"at"`
}

// NewCheckoutAttemptTask 创建结账尝试落库任务
func NewCheckoutAttemptTask(payload CheckoutAttemptPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCheckoutAttemptStore, body), nil
}

// ParseCheckoutAttemptPayload 解析结账尝试任务载荷
func ParseCheckoutAttemptPayload(task *asynq.Task) (CheckoutAttemptPayload, error) {
	var payload CheckoutAttemptPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
