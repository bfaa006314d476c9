package queue

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/kantin-next/internal/config"
	"github.com/kantin-next/internal/constants"

	"github.com/hibiken/asynq"
)

// DefaultQueue 结账日志任务所在队列
const DefaultQueue = constants.QueueDefault

const (
	journalMaxRetry = 5
	journalTimeout  = 30 * time.Second
	// 相同载荷在该时长内只入队一次
	journalUniqueTTL = time.Minute
)

// Client 结账日志任务投递端；队列未启用时所有投递都是空操作
type Client struct {
	asynq *asynq.Client
}

// NewClient cfg 为空或未启用时返回空操作客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{asynq: asynq.NewClient(RedisOpt(cfg))}, nil
}

// Enabled 是否真正投递到 Redis
func (c *Client) Enabled() bool {
	return c != nil && c.asynq != nil
}

// EnqueueCheckoutAttempt 投递一条结账日志，由 worker 落库
func (c *Client) EnqueueCheckoutAttempt(payload CheckoutAttemptPayload) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewCheckoutAttemptTask(payload)
	if err != nil {
		return err
	}
	_, err = c.asynq.Enqueue(task,
		asynq.Queue(DefaultQueue),
		asynq.MaxRetry(journalMaxRetry),
		asynq.Timeout(journalTimeout),
		asynq.Unique(journalUniqueTTL),
	)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

// RedisOpt 队列使用的 Redis 连接，缺省 127.0.0.1:6379
func RedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host, port := strings.TrimSpace(cfg.Host), cfg.Port
	if host == "" {
		host = "127.0.0.1"
	}
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}

// ServerConfig worker 端的并发与队列权重，未配置队列时只消费 DefaultQueue
func ServerConfig(cfg *config.QueueConfig) asynq.Config {
	out := asynq.Config{Concurrency: 10, Queues: map[string]int{DefaultQueue: 1}}
	if cfg == nil {
		return out
	}
	if cfg.Concurrency > 0 {
		out.Concurrency = cfg.Concurrency
	}
	if len(cfg.Queues) > 0 {
		out.Queues = cfg.Queues
	}
	return out
}
