package router

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/kantin-next/internal/authz"
	"github.com/kantin-next/internal/cache"
	"github.com/kantin-next/internal/config"
	adminhandlers "github.com/kantin-next/internal/http/handlers/admin"
	publichandlers "github.com/kantin-next/internal/http/handlers/public"
	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/i18n"
	"github.com/kantin-next/internal/logger"
	"github.com/kantin-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "kantin"
	}
	attempts := RedisCounter(cache.Client())
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.too_many_requests",
	}
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.too_many_requests",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组，所有接口都挂在会话上（访客或已登录）
	apiV1 := r.Group("/api/v1")
	apiV1.Use(SessionMiddleware(c.Sessions, cfg.Session.HeaderName))
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/menu", publicHandler.ListMenu)
			public.GET("/menu/:id", publicHandler.GetMenuItem)
			public.GET("/categories", publicHandler.ListCategories)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(attempts, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.POST("/register", RateLimitMiddleware(attempts, registerRule, KeyByIP), publicHandler.Register)
			auth.POST("/logout", publicHandler.Logout)
		}
		apiV1.GET("/me", publicHandler.Me)

		// 购物车（访客可用）
		cartGroup := apiV1.Group("/cart")
		{
			cartGroup.GET("", publicHandler.GetCart)
			cartGroup.DELETE("", publicHandler.ClearCart)
			cartGroup.POST("/items", publicHandler.AddCartItem)
			cartGroup.PATCH("/items/:item_id", publicHandler.UpdateCartItem)
			cartGroup.DELETE("/items/:item_id", publicHandler.RemoveCartItem)
			cartGroup.POST("/toggle", publicHandler.ToggleCart)
			cartGroup.POST("/close", publicHandler.CloseCart)
			cartGroup.GET("/events", publicHandler.StreamCartEvents)
		}

		// 结账：未登录由结账流程返回 401
		apiV1.GET("/checkout/payment-methods", publicHandler.ListPaymentMethods)
		apiV1.POST("/checkout", publicHandler.Checkout)

		// 用户接口（需登录，按会话角色鉴权）
		user := apiV1.Group("")
		user.Use(RequireAuthMiddleware(), RBACMiddleware(c.AuthzService))
		{
			user.GET("/orders/history", publicHandler.ListOrderHistory)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(RequireAuthMiddleware(), RBACMiddleware(c.AuthzService))
		{
			// 菜单与分类
			admin.GET("/menu", adminHandler.ListMenus)
			admin.POST("/menu", adminHandler.CreateMenu)
			admin.PUT("/menu/:id", adminHandler.UpdateMenu)
			admin.DELETE("/menu/:id", adminHandler.DeleteMenu)
			admin.GET("/categories", adminHandler.ListCategories)
			admin.POST("/categories", adminHandler.CreateCategory)

			// 订单
			admin.GET("/orders", adminHandler.ListOrders)
			admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)

			// 用户
			admin.GET("/users", adminHandler.ListUsers)

			// 结账日志
			admin.GET("/checkout-attempts", adminHandler.ListCheckoutAttempts)
			admin.GET("/checkout-attempts/summary", adminHandler.GetCheckoutAttemptSummary)

			// 员工角色
			admin.GET("/authz/me", adminHandler.GetAuthzMe)
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.GET("/authz/users/:id/roles", adminHandler.GetAuthzUserRoles)
			admin.PUT("/authz/users/:id/roles", adminHandler.SetAuthzUserRoles)
			admin.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				catalog, err := buildAdminPermissionCatalog(r, c.AuthzService)
				if err != nil {
					logger.Errorw("admin_permission_catalog_failed", "error", err)
					response.Error(ctx, response.CodeInternal, i18n.T(i18n.ResolveLocale(ctx), "error.internal_error"))
					return
				}
				response.Success(ctx, catalog)
			})
		}
	}

	// 指标
	if cfg.Metrics.Enabled {
		metricsPath := strings.TrimSpace(cfg.Metrics.Path)
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.GET(metricsPath, gin.WrapH(promhttp.Handler()))
	}

	// 健康检查
	r.GET("/healthz", func(ctx *gin.Context) {
		redisStatus := "disabled"
		if cache.Enabled() {
			pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
			defer cancel()
			redisStatus = "ok"
			if err := cache.Ping(pingCtx); err != nil {
				redisStatus = "unavailable"
			}
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "redis": redisStatus})
	})

	return r
}

// adminPermissionCatalogItem 管理端路由及可访问的预置角色
type adminPermissionCatalogItem struct {
	Module string   `json:"module"`
	Method string   `json:"method"`
	Object string   `json:"object"`
	Roles  []string `json:"roles"`
}

func buildAdminPermissionCatalog(engine *gin.Engine, authzService *authz.Service) ([]adminPermissionCatalogItem, error) {
	items := []adminPermissionCatalogItem{}
	if engine == nil {
		return items, nil
	}
	seeds := authz.RoleSeeds()
	seen := map[string]struct{}{}
	for _, route := range engine.Routes() {
		method := strings.ToUpper(route.Method)
		if method == http.MethodOptions || method == http.MethodHead || !strings.HasPrefix(route.Path, "/api/v1/admin/") {
			continue
		}
		object := authz.NormalizeObject(route.Path)
		if _, dup := seen[method+" "+object]; dup {
			continue
		}
		seen[method+" "+object] = struct{}{}

		roles := make([]string, 0, len(seeds))
		for _, seed := range seeds {
			allow, err := authzService.Authorize(0, seed.Role, route.Path, method)
			if err != nil {
				return nil, err
			}
			if allow {
				roles = append(roles, seed.Role)
			}
		}
		items = append(items, adminPermissionCatalogItem{
			Module: adminModuleOf(object),
			Method: method,
			Object: object,
			Roles:  roles,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Method < b.Method
	})
	return items, nil
}

// adminModuleOf /admin/menu/:id -> menu
func adminModuleOf(object string) string {
	segments := strings.Split(strings.Trim(object, "/"), "/")
	if len(segments) >= 2 && segments[0] == "admin" {
		return segments[1]
	}
	return segments[0]
}
