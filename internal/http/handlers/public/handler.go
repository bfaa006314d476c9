package public

import (
	"github.com/kantin-next/internal/cart"
	"github.com/kantin-next/internal/catalog"
	"github.com/kantin-next/internal/checkout"
	"github.com/kantin-next/internal/metrics"
	"github.com/kantin-next/internal/provider"
	"github.com/kantin-next/internal/service"
)

// Handler 访客与顾客侧接口：菜单、购物车、结账、登录
type Handler struct {
	auth      *service.AuthService
	carts     *cart.Registry
	menu      *catalog.Service
	checkouts *checkout.Service
	orders    *service.OrderService
	metrics   *metrics.Metrics
}

// New 从容器取出前台需要的依赖
func New(c *provider.Container) *Handler {
	return &Handler{
		auth:      c.AuthService,
		carts:     c.Carts,
		menu:      c.CatalogService,
		checkouts: c.CheckoutService,
		orders:    c.OrderService,
		metrics:   c.Metrics,
	}
}
