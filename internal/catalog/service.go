package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/kantin-next/internal/backend"
	"github.com/kantin-next/internal/cache"
	"github.com/kantin-next/internal/cart"
	"github.com/kantin-next/internal/logger"
)

var (
	ErrItemNotFound   = errors.New("menu item not found")
	ErrItemOutOfStock = errors.New("menu item out of stock")
)

const (
	menuCacheKey     = "catalog:menu"
	categoryCacheKey = "catalog:categories"
)

// Source 菜单数据来源
type Source interface {
	ListMenus(ctx context.Context) ([]backend.Menu, error)
	ListKategori(ctx context.Context) ([]backend.Kategori, error)
}

// Filter 菜单筛选条件
type Filter struct {
	CategoryID  uint
	Query       string
	InStockOnly bool
}

type snapshot struct {
	items      []Item
	categories []Category
	itemsAt    time.Time
	catsAt     time.Time
}

// Service 只读菜单视图
// Redis 启用时缓存到 Redis，否则使用进程内快照
type Service struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	local snapshot
}

// NewService 创建菜单服务
func NewService(source Source, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Service{source: source, ttl: ttl, now: time.Now}
}

// List 菜单列表
func (s *Service) List(ctx context.Context, filter Filter) ([]Item, error) {
	items, err := s.items(ctx)
	if err != nil {
		return nil, err
	}
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if filter.CategoryID != 0 && item.CategoryID != filter.CategoryID {
			continue
		}
		if filter.InStockOnly && !item.InStock() {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// Get 菜单详情
func (s *Service) Get(ctx context.Context, id uint) (*Item, error) {
	items, err := s.items(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			item := items[i]
			return &item, nil
		}
	}
	return nil, ErrItemNotFound
}

// Categories 分类列表
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	var cached []Category
	if ok, err := cache.GetJSON(ctx, categoryCacheKey, &cached); err == nil && ok {
		return cached, nil
	} else if err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", categoryCacheKey, "error", err)
	}
	if !cache.Enabled() {
		s.mu.Lock()
		if s.local.categories != nil && s.fresh(s.local.catsAt) {
			out := append([]Category(nil), s.local.categories...)
			s.mu.Unlock()
			return out, nil
		}
		s.mu.Unlock()
	}

	kategoris, err := s.source.ListKategori(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]Category, 0, len(kategoris))
	for _, k := range kategoris {
		categories = append(categories, fromKategori(k))
	}
	s.store(ctx, categoryCacheKey, categories)
	if !cache.Enabled() {
		s.mu.Lock()
		s.local.categories = categories
		s.local.catsAt = s.now()
		s.mu.Unlock()
	}
	return categories, nil
}

// Invalidate 管理端修改后清除缓存
func (s *Service) Invalidate(ctx context.Context) {
	for _, key := range []string{menuCacheKey, categoryCacheKey} {
		if err := cache.Del(ctx, key); err != nil {
			logger.Warnw("catalog_cache_invalidate_failed", "key", key, "error", err)
		}
	}
	s.mu.Lock()
	s.local = snapshot{}
	s.mu.Unlock()
}

// Purchasable 校验菜单可加入购物车
func (s *Service) Purchasable(ctx context.Context, id uint) (cart.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return cart.Item{}, err
	}
	if !item.InStock() {
		return cart.Item{}, ErrItemOutOfStock
	}
	return item.CartItem(), nil
}

func (s *Service) items(ctx context.Context) ([]Item, error) {
	var cached []Item
	if ok, err := cache.GetJSON(ctx, menuCacheKey, &cached); err == nil && ok {
		return cached, nil
	} else if err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", menuCacheKey, "error", err)
	}
	if !cache.Enabled() {
		s.mu.Lock()
		if s.local.items != nil && s.fresh(s.local.itemsAt) {
			out := append([]Item(nil), s.local.items...)
			s.mu.Unlock()
			return out, nil
		}
		s.mu.Unlock()
	}

	menus, err := s.source.ListMenus(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(menus))
	for _, menu := range menus {
		items = append(items, fromMenu(menu))
	}
	s.store(ctx, menuCacheKey, items)
	if !cache.Enabled() {
		s.mu.Lock()
		s.local.items = items
		s.local.itemsAt = s.now()
		s.mu.Unlock()
	}
	return append([]Item(nil), items...), nil
}

func (s *Service) store(ctx context.Context, key string, value interface{}) {
	if err := cache.SetJSON(ctx, key, value, s.ttl); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", key, "error", err)
	}
}

func (s *Service) fresh(at time.Time) bool {
	return s.now().Sub(at) < s.ttl
}
