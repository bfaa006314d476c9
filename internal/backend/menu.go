package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ListMenus 菜单列表
func (c *Client) ListMenus(ctx context.Context) ([]Menu, error) {
	var out struct {
		Menus []Menu `json:"menus"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/menu", nil, &out); err != nil {
		return nil, err
	}
	return out.Menus, nil
}

// GetMenu 菜单详情
func (c *Client) GetMenu(ctx context.Context, id uint) (*Menu, error) {
	var out struct {
		Menu *Menu `json:"menu"`
	}
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/menu/%d", id), nil, &out); err != nil {
		return nil, err
	}
	if out.Menu == nil {
		return nil, invalidResponse("menu missing")
	}
	return out.Menu, nil
}

// CreateMenu 新增菜单
func (c *Client) CreateMenu(ctx context.Context, input MenuInput) (*Menu, error) {
	var out struct {
		Menu *Menu `json:"menu"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/menu", input, &out); err != nil {
		return nil, err
	}
	return out.Menu, nil
}

// UpdateMenu 修改菜单
func (c *Client) UpdateMenu(ctx context.Context, id uint, input MenuInput) (*Menu, error) {
	var out struct {
		Menu *Menu `json:"menu"`
	}
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/api/menu/%d", id), input, &out); err != nil {
		return nil, err
	}
	return out.Menu, nil
}

// DeleteMenu 删除菜单
func (c *Client) DeleteMenu(ctx context.Context, id uint) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/menu/%d", id), nil, nil)
}

// ListKategori 分类列表
func (c *Client) ListKategori(ctx context.Context) ([]Kategori, error) {
	var out struct {
		Kategoris []Kategori `json:"kategoris"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/kategori", nil, &out); err != nil {
		return nil, err
	}
	return out.Kategoris, nil
}

// CreateKategori 新增分类
func (c *Client) CreateKategori(ctx context.Context, input KategoriInput) (*Kategori, error) {
	var out struct {
		Kategori *Kategori `json:"kategori"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/kategori", input, &out); err != nil {
		return nil, err
	}
	return out.Kategori, nil
}
