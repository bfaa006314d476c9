package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kantin-next/internal/catalog"
	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/i18n"

	"github.com/gin-gonic/gin"
)

// MenuItemView 菜单项响应
type MenuItemView struct {
	catalog.Item
	PriceDisplay string `json:"price_display"`
	InStock      bool   `json:"in_stock"`
}

func newMenuItemView(item catalog.Item) MenuItemView {
	return MenuItemView{
		Item:         item,
		PriceDisplay: i18n.FormatRupiah(item.Price),
		InStock:      item.InStock(),
	}
}

// ListMenu 菜单列表
func (h *Handler) ListMenu(c *gin.Context) {
	filter := catalog.Filter{
		Query:       strings.TrimSpace(c.Query("q")),
		InStockOnly: parseBoolQuery(c.Query("in_stock")),
	}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.CategoryID = uint(categoryID)
	}

	items, err := h.menu.List(c.Request.Context(), filter)
	if err != nil {
		respondBackendError(c, err, "error.menu_fetch_failed")
		return
	}
	views := make([]MenuItemView, 0, len(items))
	for _, item := range items {
		views = append(views, newMenuItemView(item))
	}
	response.Success(c, gin.H{"items": views})
}

// GetMenuItem 菜单详情
func (h *Handler) GetMenuItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.menu_not_found")
	if !ok {
		return
	}
	item, err := h.menu.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			respondError(c, response.CodeNotFound, "error.menu_not_found", nil)
			return
		}
		respondBackendError(c, err, "error.menu_fetch_failed")
		return
	}
	response.Success(c, newMenuItemView(*item))
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.menu.Categories(c.Request.Context())
	if err != nil {
		respondBackendError(c, err, "error.category_fetch_failed")
		return
	}
	response.Success(c, gin.H{"items": categories})
}

func parseBoolQuery(raw string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && value
}
