package service

import (
	"context"
	"time"

	"github.com/kantin-next/internal/checkout"
	"github.com/kantin-next/internal/logger"
	"github.com/kantin-next/internal/models"
	"github.com/kantin-next/internal/queue"
	"github.com/kantin-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CheckoutJournalService 结账尝试日志
// 队列启用时异步落库，否则同步写入
type CheckoutJournalService struct {
	repo        repository.CheckoutAttemptRepository
	queueClient *queue.Client
}

// NewCheckoutJournalService 创建结账日志服务
func NewCheckoutJournalService(repo repository.CheckoutAttemptRepository, queueClient *queue.Client) *CheckoutJournalService {
	return &CheckoutJournalService{repo: repo, queueClient: queueClient}
}

// RecordAttempt 记录一次结账尝试，失败只记日志
func (s *CheckoutJournalService) RecordAttempt(_ context.Context, attempt checkout.Attempt) {
	if s == nil {
		return
	}
	payload := queue.CheckoutAttemptPayload{
		SessionID:     attempt.SessionID,
		UserID:        attempt.UserID,
		OrderID:       attempt.OrderID,
		PaymentMethod: attempt.PaymentMethod,
		ItemCount:     attempt.ItemCount,
		TotalAmount:   attempt.TotalAmount.String(),
		Result:        attempt.Result,
		ErrorMessage:  truncate(attempt.ErrorMessage, 500),
		DurationMS:    attempt.Duration.Milliseconds(),
		At:            attempt.At,
	}
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueCheckoutAttempt(payload)
		if err == nil {
			return
		}
		logger.Warnw("checkout_journal_enqueue_failed", "session_id", attempt.SessionID, "error", err)
	}
	if err := s.Persist(payload); err != nil {
		logger.Warnw("checkout_journal_persist_failed", "session_id", attempt.SessionID, "error", err)
	}
}

// Persist 写入结账尝试（供队列消费者调用）
func (s *CheckoutJournalService) Persist(payload queue.CheckoutAttemptPayload) error {
	if s == nil || s.repo == nil {
		return nil
	}
	amount, err := decimal.NewFromString(payload.TotalAmount)
	if err != nil {
		amount = decimal.Zero
	}
	createdAt := payload.At
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return s.repo.Create(&models.CheckoutAttempt{
		SessionID:     payload.SessionID,
		UserID:        payload.UserID,
		OrderID:       payload.OrderID,
		PaymentMethod: payload.PaymentMethod,
		ItemCount:     payload.ItemCount,
		TotalAmount:   models.NewMoneyFromDecimal(amount),
		Result:        payload.Result,
		ErrorMessage:  payload.ErrorMessage,
		DurationMS:    payload.DurationMS,
		CreatedAt:     createdAt,
	})
}

// ListAdmin 管理端查询
func (s *CheckoutJournalService) ListAdmin(filter repository.CheckoutAttemptListFilter) ([]models.CheckoutAttempt, int64, error) {
	return s.repo.ListAdmin(filter)
}

// Summary 按结果汇总
func (s *CheckoutJournalService) Summary() ([]repository.CheckoutAttemptSummary, error) {
	return s.repo.SummaryByResult()
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max])
}
