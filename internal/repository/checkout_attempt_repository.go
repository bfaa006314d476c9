package repository

import (
	"strings"

	"github.com/kantin-next/internal/models"

	"gorm.io/gorm"
)

// CheckoutAttemptRepository 结账尝试日志数据访问接口
type CheckoutAttemptRepository interface {
	Create(attempt *models.CheckoutAttempt) error
	ListAdmin(filter CheckoutAttemptListFilter) ([]models.CheckoutAttempt, int64, error)
	SummaryByResult() ([]CheckoutAttemptSummary, error)
}

// GormCheckoutAttemptRepository GORM 实现
type GormCheckoutAttemptRepository struct {
	db *gorm.DB
}

// NewCheckoutAttemptRepository 创建结账尝试日志仓库
func NewCheckoutAttemptRepository(db *gorm.DB) *GormCheckoutAttemptRepository {
	return &GormCheckoutAttemptRepository{db: db}
}

// Create 写入一条结账尝试
func (r *GormCheckoutAttemptRepository) Create(attempt *models.CheckoutAttempt) error {
	if attempt == nil {
		return nil
	}
	return r.db.Create(attempt).Error
}

// ListAdmin 管理端查询结账尝试
func (r *GormCheckoutAttemptRepository) ListAdmin(filter CheckoutAttemptListFilter) ([]models.CheckoutAttempt, int64, error) {
	query := r.db.Model(&models.CheckoutAttempt{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if sid := strings.TrimSpace(filter.SessionID); sid != "" {
		query = query.Where("session_id = ?", sid)
	}
	if result := strings.TrimSpace(filter.Result); result != "" {
		query = query.Where("result = ?", result)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"payment_method", "error_message"})
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = filter.Page.scope(query)

	var attempts []models.CheckoutAttempt
	if err := query.Order("id desc").Find(&attempts).Error; err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

// SummaryByResult 按结果汇总数量
func (r *GormCheckoutAttemptRepository) SummaryByResult() ([]CheckoutAttemptSummary, error) {
	var rows []CheckoutAttemptSummary
	err := r.db.Model(&models.CheckoutAttempt{}).
		Select("result, COUNT(*) AS count").
		Group("result").
		Order("result asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
