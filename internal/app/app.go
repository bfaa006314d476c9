package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/kantin-next/internal/config"
	"github.com/kantin-next/internal/logger"
	"github.com/kantin-next/internal/provider"
	"github.com/kantin-next/internal/router"
	"github.com/kantin-next/internal/worker"

	"go.uber.org/zap"
)

// 启动模式
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 启动参数，零值字段按默认值补齐
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.S()
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = defaultShutdownTimeout
	}
	if o.Mode == "" {
		o.Mode = ModeAll
	}
	return o
}

// Run 装配容器并运行所选模式下的服务，直到收到信号或某个服务退出
func Run(opts Options) error {
	opts = opts.withDefaults()
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	runner, err := Assemble(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, opts.Signals...)
		defer stop()
	}
	opts.Logger.Infow("app_start", "mode", opts.Mode, "services", runner.Names())
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Assemble 按模式挑选服务
// api 模式包含 HTTP 网关与空闲购物车回收；worker 模式只消费结账日志任务
func Assemble(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	switch mode {
	case ModeAll, ModeAPI, ModeWorker:
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	if mode == ModeWorker && !cfg.Queue.Enabled {
		return nil, errors.New("worker mode requires queue.enabled")
	}

	container := provider.NewContainer(cfg)
	runner := &Runner{}

	if mode != ModeWorker {
		runner.Add(NewAPIServer(cfg.Server.Host+":"+cfg.Server.Port, router.SetupRouter(cfg, container)))
		runner.Add(NewCartSweeper(cfg.Session.CartSweepInterval(), container.SweepIdleCarts))
	}

	// 队列关闭时结账日志同步落库，不需要消费者
	if cfg.Queue.Enabled && mode != ModeAPI {
		consumer := worker.NewConsumer(container.CheckoutJournalService)
		journalWorker, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			return nil, err
		}
		runner.Add(journalWorker)
	}
	return runner, nil
}
