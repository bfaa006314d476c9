package repository

import "time"

// CheckoutAttemptListFilter 查询结账尝试的过滤条件，Page 为零值时返回全部
type CheckoutAttemptListFilter struct {
	Page        Page
	UserID      uint
	SessionID   string
	Result      string
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CheckoutAttemptSummary 结账尝试汇总
type CheckoutAttemptSummary struct {
	Result string `gorm:"column:result" json:"result"`
	Count  int64  `gorm:"column:count" json:"count"`
}
