package public

import (
	"github.com/kantin-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListOrderHistory 当前用户的历史订单
func (h *Handler) ListOrderHistory(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orders, err := h.orders.History(c.Request.Context(), uid)
	if err != nil {
		respondBackendError(c, err, "error.order_fetch_failed")
		return
	}
	response.Success(c, gin.H{"items": orders})
}
