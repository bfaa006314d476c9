package worker

import (
	"context"
	"errors"

	"github.com/kantin-next/internal/config"
	"github.com/kantin-next/internal/logger"
	"github.com/kantin-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 消费结账日志队列
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewService 队列未启用时报错，调用方据此决定是否启动 worker
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	serverCfg := queue.ServerConfig(cfg)
	serverCfg.ErrorHandler = asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		logger.Warnw("worker_task_failed", "type", task.Type(), "retried", retried, "error", err)
	})

	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		server: asynq.NewServer(queue.RedisOpt(cfg), serverCfg),
		mux:    mux,
	}, nil
}

func (s *Service) Name() string { return "journal-worker" }

// Start 阻塞直到 Stop
func (s *Service) Start(context.Context) error {
	return s.server.Run(s.mux)
}

// Stop 等待进行中的任务结束
func (s *Service) Stop(context.Context) error {
	s.server.Shutdown()
	return nil
}
