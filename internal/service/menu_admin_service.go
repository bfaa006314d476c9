package service

import (
	"context"
	"strings"

	"github.com/kantin-next/internal/backend"
	"github.com/kantin-next/internal/constants"
)

// MenuBackend 后端菜单接口
type MenuBackend interface {
	ListMenus(ctx context.Context) ([]backend.Menu, error)
	CreateMenu(ctx context.Context, input backend.MenuInput) (*backend.Menu, error)
	UpdateMenu(ctx context.Context, id uint, input backend.MenuInput) (*backend.Menu, error)
	DeleteMenu(ctx context.Context, id uint) error
	ListKategori(ctx context.Context) ([]backend.Kategori, error)
	CreateKategori(ctx context.Context, input backend.KategoriInput) (*backend.Kategori, error)
}

// CatalogInvalidator 菜单缓存失效
type CatalogInvalidator interface {
	Invalidate(ctx context.Context)
}

// MenuAdminService 管理端菜单维护，写操作后清除菜单缓存
type MenuAdminService struct {
	backend MenuBackend
	catalog CatalogInvalidator
}

// NewMenuAdminService 创建菜单管理服务
func NewMenuAdminService(b MenuBackend, catalog CatalogInvalidator) *MenuAdminService {
	return &MenuAdminService{backend: b, catalog: catalog}
}

// List 菜单列表（原始数据）
func (s *MenuAdminService) List(ctx context.Context) ([]backend.Menu, error) {
	return s.backend.ListMenus(ctx)
}

// Create 新增菜单
func (s *MenuAdminService) Create(ctx context.Context, input backend.MenuInput) (*backend.Menu, error) {
	input, err := normalizeMenuInput(input)
	if err != nil {
		return nil, err
	}
	menu, err := s.backend.CreateMenu(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return menu, nil
}

// Update 修改菜单
func (s *MenuAdminService) Update(ctx context.Context, id uint, input backend.MenuInput) (*backend.Menu, error) {
	if id == 0 {
		return nil, ErrMenuInputInvalid
	}
	input, err := normalizeMenuInput(input)
	if err != nil {
		return nil, err
	}
	menu, err := s.backend.UpdateMenu(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return menu, nil
}

// Delete 删除菜单
func (s *MenuAdminService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrMenuInputInvalid
	}
	if err := s.backend.DeleteMenu(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ListCategories 分类列表
func (s *MenuAdminService) ListCategories(ctx context.Context) ([]backend.Kategori, error) {
	return s.backend.ListKategori(ctx)
}

// CreateCategory 新增分类
func (s *MenuAdminService) CreateCategory(ctx context.Context, input backend.KategoriInput) (*backend.Kategori, error) {
	input.NamaKategori = strings.TrimSpace(input.NamaKategori)
	input.Icon = strings.TrimSpace(input.Icon)
	if input.NamaKategori == "" {
		return nil, ErrCategoryInvalid
	}
	kategori, err := s.backend.CreateKategori(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return kategori, nil
}

func (s *MenuAdminService) invalidate(ctx context.Context) {
	if s.catalog != nil {
		s.catalog.Invalidate(ctx)
	}
}

// normalizeMenuInput 新写入统一使用 in_stock / out_of_stock
func normalizeMenuInput(input backend.MenuInput) (backend.MenuInput, error) {
	input.NamaMenu = strings.TrimSpace(input.NamaMenu)
	input.Deskripsi = strings.TrimSpace(input.Deskripsi)
	input.Image = strings.TrimSpace(input.Image)
	if input.NamaMenu == "" || input.KategoriID == 0 || input.Harga.IsNegative() {
		return input, ErrMenuInputInvalid
	}
	switch strings.ToLower(strings.TrimSpace(input.Status)) {
	case "", constants.AvailabilityInStock:
		input.Status = constants.AvailabilityInStock
	case constants.AvailabilityOutOfStock:
		input.Status = constants.AvailabilityOutOfStock
	default:
		return input, ErrMenuInputInvalid
	}
	return input, nil
}
