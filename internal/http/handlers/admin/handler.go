package admin

import (
	"github.com/kantin-next/internal/authz"
	"github.com/kantin-next/internal/backend"
	"github.com/kantin-next/internal/provider"
	"github.com/kantin-next/internal/service"
)

// Handler 管理端接口
// 菜单、订单、用户都在食堂后端，这里只做代理与本地结账日志、员工角色
type Handler struct {
	authz   *authz.Service
	backend *backend.Client
	orders  *service.OrderService
	menus   *service.MenuAdminService
	journal *service.CheckoutJournalService
}

// New 从容器取出管理端依赖
func New(c *provider.Container) *Handler {
	return &Handler{
		authz:   c.AuthzService,
		backend: c.Backend,
		orders:  c.OrderService,
		menus:   c.MenuAdminService,
		journal: c.CheckoutJournalService,
	}
}
