package catalog

import (
	"strings"

	"github.com/kantin-next/internal/backend"
	"github.com/kantin-next/internal/cart"
	"github.com/kantin-next/internal/constants"
	"github.com/kantin-next/internal/models"
)

// Category 菜单分类
type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Item 菜单项（库存状态已统一）
type Item struct {
	ID           uint         `json:"id"`
	CategoryID   uint         `json:"category_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        models.Money `json:"price"`
	Image        string       `json:"image"`
	Availability string       `json:"availability"`
	Category     *Category    `json:"category,omitempty"`
}

// InStock 是否可购买
func (i Item) InStock() bool {
	return i.Availability == constants.AvailabilityInStock
}

// CartItem 加入购物车时的快照
func (i Item) CartItem() cart.Item {
	return cart.Item{ID: i.ID, Name: i.Name, Price: i.Price}
}

// NormalizeAvailability 统一库存状态
// 旧数据里混用了 tersedia/habis、aktif/nonaktif、available/unavailable 等写法
// 空值视为有货，无法识别的值视为无货
func NormalizeAvailability(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "in_stock", "in-stock", "tersedia", "aktif", "available":
		return constants.AvailabilityInStock
	case "out_of_stock", "out-of-stock", "habis", "nonaktif", "unavailable":
		return constants.AvailabilityOutOfStock
	default:
		return constants.AvailabilityOutOfStock
	}
}

func fromMenu(menu backend.Menu) Item {
	item := Item{
		ID:           menu.MenuID,
		CategoryID:   menu.KategoriID,
		Name:         strings.TrimSpace(menu.NamaMenu),
		Description:  menu.Deskripsi,
		Price:        menu.Harga,
		Image:        menu.Image,
		Availability: NormalizeAvailability(menu.Status),
	}
	if menu.Kategori != nil {
		category := fromKategori(*menu.Kategori)
		item.Category = &category
	}
	return item
}

func fromKategori(k backend.Kategori) Category {
	return Category{ID: k.KategoriID, Name: strings.TrimSpace(k.NamaKategori), Icon: k.Icon}
}
