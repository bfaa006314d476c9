package models

import "time"

// CheckoutAttempt 结账尝试日志
// 每次真正发往后端的下单请求记录一条，本地校验失败不记录
type CheckoutAttempt struct {
	ID            uint      `gorm:"primarykey" json:"id"`                              // 主键
	SessionID     string    `gorm:"type:varchar(64);index;not null" json:"session_id"` // 会话ID
	UserID        uint      `gorm:"index;not null" json:"user_id"`                     // 用户ID
	OrderID       uint      `gorm:"index" json:"order_id"`                             // 后端订单ID，失败时为 0
	PaymentMethod string    `gorm:"type:varchar(32);not null" json:"payment_method"`   // 提交给后端的支付方式
	ItemCount     int       `gorm:"not null" json:"item_count"`                        // 商品件数
	TotalAmount   Money     `gorm:"type:decimal(20,2);not null" json:"total_amount"`   // 购物车金额
	Result        string    `gorm:"type:varchar(16);index;not null" json:"result"`     // success / failed
	ErrorMessage  string    `gorm:"type:varchar(500)" json:"error_message,omitempty"`  // 失败原因
	DurationMS    int64     `gorm:"not null;default:0" json:"duration_ms"`             // 请求耗时
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                           // 创建时间
}

// TableName 指定表名
func (CheckoutAttempt) TableName() string {
	return "checkout_attempts"
}
