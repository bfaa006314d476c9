package admin

import (
	"strings"

	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/i18n"
	"github.com/kantin-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 修改订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders 管理端订单列表，可按状态筛选
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListAdmin(c.Request.Context(), strings.TrimSpace(c.Query("status")))
	if err != nil {
		respondBackendError(c, err, "error.order_fetch_failed")
		return
	}
	response.Success(c, gin.H{"items": orders})
}

// UpdateOrderStatus 修改订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.order_status_invalid")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondValidationOrBackendError(c, err, service.ErrOrderStatusInvalid, response.CodeBadRequest, "error.order_status_invalid", "error.internal_error")
		return
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if order != nil && order.Status != "" {
		status = order.Status
	}
	requestLog(c).Infow("admin_order_status_updated",
		"order_id", id,
		"status", status,
		"operator_id", c.GetUint("user_id"),
	)
	msg := i18n.Sprintf(i18n.ResolveLocale(c), "message.order_status_updated", id, status)
	response.SuccessWithMsg(c, msg, order)
}
