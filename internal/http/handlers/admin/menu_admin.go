package admin

import (
	"github.com/kantin-next/internal/backend"
	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListMenus 菜单列表（后端原始状态）
func (h *Handler) ListMenus(c *gin.Context) {
	menus, err := h.menus.List(c.Request.Context())
	if err != nil {
		respondBackendError(c, err, "error.menu_fetch_failed")
		return
	}
	response.Success(c, gin.H{"items": menus})
}

// CreateMenu 新增菜单
func (h *Handler) CreateMenu(c *gin.Context) {
	var req backend.MenuInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.menu_input_invalid", nil)
		return
	}
	menu, err := h.menus.Create(c.Request.Context(), req)
	if err != nil {
		respondValidationOrBackendError(c, err, service.ErrMenuInputInvalid, response.CodeBadRequest, "error.menu_input_invalid", "error.internal_error")
		return
	}
	requestLog(c).Infow("admin_menu_created", "menu_id", menu.MenuID, "operator_id", c.GetUint("user_id"))
	response.Success(c, menu)
}

// UpdateMenu 修改菜单
func (h *Handler) UpdateMenu(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.menu_not_found")
	if !ok {
		return
	}
	var req backend.MenuInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.menu_input_invalid", nil)
		return
	}
	menu, err := h.menus.Update(c.Request.Context(), id, req)
	if err != nil {
		respondValidationOrBackendError(c, err, service.ErrMenuInputInvalid, response.CodeBadRequest, "error.menu_input_invalid", "error.internal_error")
		return
	}
	response.Success(c, menu)
}

// DeleteMenu 删除菜单
func (h *Handler) DeleteMenu(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.menu_not_found")
	if !ok {
		return
	}
	if err := h.menus.Delete(c.Request.Context(), id); err != nil {
		respondValidationOrBackendError(c, err, service.ErrMenuInputInvalid, response.CodeBadRequest, "error.menu_input_invalid", "error.internal_error")
		return
	}
	requestLog(c).Infow("admin_menu_deleted", "menu_id", id, "operator_id", c.GetUint("user_id"))
	response.Success(c, gin.H{"deleted": true})
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.menus.ListCategories(c.Request.Context())
	if err != nil {
		respondBackendError(c, err, "error.category_fetch_failed")
		return
	}
	response.Success(c, gin.H{"items": categories})
}

// CreateCategory 新增分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req backend.KategoriInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.category_invalid", nil)
		return
	}
	kategori, err := h.menus.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondValidationOrBackendError(c, err, service.ErrCategoryInvalid, response.CodeBadRequest, "error.category_invalid", "error.internal_error")
		return
	}
	response.Success(c, kategori)
}
