package provider

import (
	"context"

	"github.com/kantin-next/internal/authz"
	"github.com/kantin-next/internal/backend"
	"github.com/kantin-next/internal/cache"
	"github.com/kantin-next/internal/cart"
	"github.com/kantin-next/internal/catalog"
	"github.com/kantin-next/internal/checkout"
	"github.com/kantin-next/internal/config"
	"github.com/kantin-next/internal/constants"
	"github.com/kantin-next/internal/logger"
	"github.com/kantin-next/internal/metrics"
	"github.com/kantin-next/internal/models"
	"github.com/kantin-next/internal/queue"
	"github.com/kantin-next/internal/repository"
	"github.com/kantin-next/internal/service"
	"github.com/kantin-next/internal/session"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Metrics     *metrics.Metrics
	Backend     *backend.Client

	// Repositories
	CheckoutAttemptRepo repository.CheckoutAttemptRepository

	// 会话状态
	Sessions *session.Manager
	Carts    *cart.Registry

	// Services
	AuthzService           *authz.Service
	AuthService            *service.AuthService
	CatalogService         *catalog.Service
	CheckoutService        *checkout.Service
	CheckoutJournalService *service.CheckoutJournalService
	OrderService           *service.OrderService
	MenuAdminService       *service.MenuAdminService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Metrics:     metrics.New(),
		Backend:     backend.NewClient(cfg.Backend, nil),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化会话状态
	c.initSessions()

	// 3. 初始化 Services
	c.initServices()

	// 4. 绑定会话事件
	c.BindEvents()

	return c
}

func (c *Container) initRepositories() {
	c.CheckoutAttemptRepo = repository.NewCheckoutAttemptRepository(models.DB)
}

func (c *Container) initSessions() {
	var store session.Store
	if cache.Enabled() {
		store = session.NewRedisStore(c.Config.Session.KeyPrefix)
	} else {
		logger.Warnw("provider_session_store_memory", "reason", "redis disabled")
		store = session.NewMemoryStore()
	}
	c.Sessions = session.NewManager(
		session.NewAccessor(store, c.Config.Session.TTL()),
		session.NewTokens(c.Config.Session.Secret, c.Config.Session.TTL()),
		session.NewBus(),
	)
	c.Carts = cart.NewRegistry()
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.SyncRoles(); err != nil {
		logger.Errorw("provider_sync_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Backend, c.Sessions, c.Config.Backend.AdminRoleID)
	c.CatalogService = catalog.NewService(c.Backend, c.Config.Catalog.CacheTTL())
	c.CheckoutJournalService = service.NewCheckoutJournalService(c.CheckoutAttemptRepo, c.QueueClient)
	c.CheckoutService = checkout.NewService(
		checkout.NewBackendOrders(c.Backend),
		c.CheckoutJournalService,
		c.Metrics,
		c.Config.Checkout.SubmitTimeout(),
	)
	c.OrderService = service.NewOrderService(c.Backend)
	c.MenuAdminService = service.NewMenuAdminService(c.Backend, c.CatalogService)
}

// BindEvents 挂载购物车与会话事件
// 登录换发会话时把购物车迁到新会话；登出时丢弃该会话的购物车与结账流程
func (c *Container) BindEvents() {
	c.Carts.OnCreate(func(sessionID string, _ *cart.Store) {
		c.Metrics.SetActiveCarts(c.Carts.Len())
		logger.Debugw("cart_created", "session_id", sessionID)
	})
	c.Sessions.Bus().Subscribe(constants.SessionEventLogin, func(_ context.Context, event session.Event) {
		if event.PreviousSessionID == "" {
			return
		}
		moved := c.Carts.Rename(event.PreviousSessionID, event.SessionID)
		if c.CheckoutService != nil {
			c.CheckoutService.Drop(event.PreviousSessionID)
		}
		c.Metrics.SetActiveCarts(c.Carts.Len())
		logger.Debugw("cart_moved_on_login",
			"session_id", event.SessionID,
			"previous_session_id", event.PreviousSessionID,
			"user_id", event.UserID,
			"moved", moved,
		)
	})
	c.Sessions.Bus().Subscribe(constants.SessionEventLogout, func(_ context.Context, event session.Event) {
		dropped := c.Carts.Drop(event.SessionID)
		if c.CheckoutService != nil {
			c.CheckoutService.Drop(event.SessionID)
		}
		c.Metrics.SetActiveCarts(c.Carts.Len())
		logger.Debugw("cart_dropped_on_logout",
			"session_id", event.SessionID,
			"user_id", event.UserID,
			"dropped", dropped,
		)
	})
}

// SweepIdleCarts 回收超过会话有效期未访问的购物车
// 会话过期后令牌已失效，对应购物车不会再被访问；结账进行中的会话跳过
func (c *Container) SweepIdleCarts() int {
	var keep func(string) bool
	if c.CheckoutService != nil {
		keep = c.CheckoutService.InFlight
	}
	evicted := c.Carts.Sweep(c.Config.Session.TTL(), keep)
	if c.CheckoutService != nil {
		for _, sessionID := range evicted {
			c.CheckoutService.Drop(sessionID)
		}
	}
	c.Metrics.SetActiveCarts(c.Carts.Len())
	if len(evicted) > 0 {
		logger.Infow("cart_idle_swept", "evicted", len(evicted), "remaining", c.Carts.Len())
	}
	return len(evicted)
}
