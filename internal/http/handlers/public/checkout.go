package public

import (
	"context"
	"errors"

	"github.com/kantin-next/internal/checkout"
	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/i18n"

	"github.com/gin-gonic/gin"
)

// ListPaymentMethods 可选支付方式
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	response.Success(c, gin.H{"items": checkout.Methods()})
}

// Checkout 提交订单
// 成功后购物车已被清空，失败时购物车保持不变以便重试
func (h *Handler) Checkout(c *gin.Context) {
	sid, store, ok := h.currentCart(c)
	if !ok {
		return
	}
	var payment checkout.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		respondError(c, response.CodeBadRequest, "error.payment_method_invalid", nil)
		return
	}

	flow := h.checkouts.Flow(sid, store)
	outcome, err := flow.Submit(c.Request.Context(), getSessionRecord(c), payment)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// 调用方已离开，结果由后台流程继续处理
			requestLog(c).Infow("checkout_caller_gone", "session_id", sid, "error", err)
			return
		}
		respondCheckoutError(c, err)
		return
	}

	locale := i18n.ResolveLocale(c)
	response.SuccessWithMsg(c, i18n.T(locale, "message.checkout_success"), gin.H{
		"order":         outcome.Order,
		"total_display": i18n.FormatRupiah(outcome.Order.TotalAmount),
		"cart":          newCartView(store.Snapshot()),
	})
}
