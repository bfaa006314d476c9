package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Service 随进程启停的后台服务
// Start 阻塞到服务结束；Stop 需要让 Start 尽快返回
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type exit struct {
	name string
	err  error
}

// Runner 并行运行服务，任何一个退出即整体收尾
type Runner struct {
	services []Service
}

// Add 追加服务，nil 忽略
func (r *Runner) Add(svc Service) {
	if svc != nil {
		r.services = append(r.services, svc)
	}
}

// Names 服务名列表
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.services))
	for _, svc := range r.services {
		names = append(names, svc.Name())
	}
	return names
}

// Run 启动全部服务；ctx 取消或任一服务退出后按启动的逆序停止
// ctx 取消属于正常关停，返回 nil
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if stopTimeout <= 0 {
		stopTimeout = defaultShutdownTimeout
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	exits := make(chan exit, len(r.services))
	for _, svc := range r.services {
		go func(svc Service) {
			log.Infow("service_start", "service", svc.Name())
			exits <- exit{name: svc.Name(), err: svc.Start(runCtx)}
		}(svc)
	}

	var cause error
	pending := len(r.services)
	select {
	case <-ctx.Done():
	case first := <-exits:
		pending--
		log.Infow("service_exit", "service", first.name, "error", first.err)
		cause = first.err
	}
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	var stopErrs []error
	for i := len(r.services) - 1; i >= 0; i-- {
		svc := r.services[i]
		if err := svc.Stop(stopCtx); err != nil {
			log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
			stopErrs = append(stopErrs, err)
		}
	}

	for ; pending > 0; pending-- {
		select {
		case done := <-exits:
			log.Infow("service_exit", "service", done.name, "error", done.err)
		case <-stopCtx.Done():
			log.Warnw("service_stop_timeout", "pending", pending)
			return errors.Join(append([]error{cause}, stopErrs...)...)
		}
	}
	return errors.Join(append([]error{cause}, stopErrs...)...)
}
