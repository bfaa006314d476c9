package worker

import (
	"context"
	"errors"

	"github.com/kantin-next/internal/logger"
	"github.com/kantin-next/internal/queue"

	"github.com/hibiken/asynq"
)

// AttemptPersister 结账尝试落库
type AttemptPersister interface {
	Persist(payload queue.CheckoutAttemptPayload) error
}

// Consumer 异步任务消费者
type Consumer struct {
	journal AttemptPersister
}

// NewConsumer 创建消费者
func NewConsumer(journal AttemptPersister) *Consumer {
	return &Consumer{journal: journal}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCheckoutAttemptStore, c.handleCheckoutAttemptStore)
}

func (c *Consumer) handleCheckoutAttemptStore(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_checkout_attempt_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseCheckoutAttemptPayload(task)
	if err != nil {
		logger.Warnw("worker_checkout_attempt_unmarshal_failed", "error", err)
		// 载荷损坏时重试无意义
		return errors.Join(err, asynq.SkipRetry)
	}
	if payload.SessionID == "" || payload.UserID == 0 {
		logger.Debugw("worker_checkout_attempt_skip_invalid_payload",
			"session_id", payload.SessionID,
			"user_id", payload.UserID,
		)
		return nil
	}
	if c.journal == nil {
		logger.Warnw("worker_checkout_attempt_skip_journal_nil", "session_id", payload.SessionID)
		return nil
	}
	if err := c.journal.Persist(payload); err != nil {
		logger.Warnw("worker_checkout_attempt_persist_failed",
			"session_id", payload.SessionID,
			"user_id", payload.UserID,
			"result", payload.Result,
			"error", err,
		)
		return err
	}
	return nil
}
