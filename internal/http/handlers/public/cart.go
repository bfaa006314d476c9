package public

import (
	"time"

	"github.com/kantin-next/internal/cart"
	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/i18n"

	"github.com/gin-gonic/gin"
)

const (
	cartEventBuffer    = 16
	cartEventKeepAlive = 25 * time.Second
)

// CartItemRequest 加入购物车请求
type CartItemRequest struct {
	ItemID uint `json:"item_id" binding:"required"`
}

// CartQuantityRequest 修改数量请求，0 表示移除
type CartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartView 购物车响应
type CartView struct {
	cart.Snapshot
	TotalDisplay string `json:"total_display"`
}

func newCartView(snapshot cart.Snapshot) CartView {
	if snapshot.Lines == nil {
		snapshot.Lines = []cart.Line{}
	}
	return CartView{Snapshot: snapshot, TotalDisplay: i18n.FormatRupiah(snapshot.TotalAmount)}
}

func (h *Handler) currentCart(c *gin.Context) (string, *cart.Store, bool) {
	sid, ok := getSessionID(c)
	if !ok {
		return "", nil, false
	}
	return sid, h.carts.Get(sid), true
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	_, store, ok := h.currentCart(c)
	if !ok {
		return
	}
	response.Success(c, newCartView(store.Snapshot()))
}

// AddCartItem 加入购物车，已存在时数量加一
func (h *Handler) AddCartItem(c *gin.Context) {
	_, store, ok := h.currentCart(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.cart_item_invalid", nil)
		return
	}
	item, err := h.menu.Purchasable(c.Request.Context(), req.ItemID)
	if err != nil {
		if isMappedError(err, cartItemErrorRules) {
			respondWithMappedError(c, err, cartItemErrorRules, response.CodeInternal, "error.menu_fetch_failed")
			return
		}
		respondBackendError(c, err, "error.menu_fetch_failed")
		return
	}
	store.AddItem(item)
	h.metrics.RecordCartMutation("add")
	response.Success(c, newCartView(store.Snapshot()))
}

// UpdateCartItem 修改数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	_, store, ok := h.currentCart(c)
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "item_id", "error.cart_item_invalid")
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.cart_quantity_invalid", nil)
		return
	}
	if err := store.UpdateQuantity(itemID, *req.Quantity); err != nil {
		respondWithMappedError(c, err, cartItemErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	h.metrics.RecordCartMutation("update")
	response.Success(c, newCartView(store.Snapshot()))
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	_, store, ok := h.currentCart(c)
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "item_id", "error.cart_item_invalid")
	if !ok {
		return
	}
	store.RemoveItem(itemID)
	h.metrics.RecordCartMutation("remove")
	response.Success(c, newCartView(store.Snapshot()))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	_, store, ok := h.currentCart(c)
	if !ok {
		return
	}
	store.Clear()
	h.metrics.RecordCartMutation("clear")
	response.Success(c, newCartView(store.Snapshot()))
}

// ToggleCart 切换购物车抽屉
func (h *Handler) ToggleCart(c *gin.Context) {
	_, store, ok := h.currentCart(c)
	if !ok {
		return
	}
	store.ToggleOpen()
	response.Success(c, newCartView(store.Snapshot()))
}

// CloseCart 关闭购物车抽屉
func (h *Handler) CloseCart(c *gin.Context) {
	_, store, ok := h.currentCart(c)
	if !ok {
		return
	}
	store.Close()
	response.Success(c, newCartView(store.Snapshot()))
}

// StreamCartEvents 以 SSE 推送购物车快照
// 连接建立时先推送当前快照，之后每次变更推送一次
func (h *Handler) StreamCartEvents(c *gin.Context) {
	sid, store, ok := h.currentCart(c)
	if !ok {
		return
	}
	updates := make(chan cart.Snapshot, cartEventBuffer)
	unsubscribe := store.Subscribe(func(snapshot cart.Snapshot) {
		select {
		case updates <- snapshot:
		default:
			// 客户端消费过慢时丢弃，后续变更仍携带完整快照
		}
	})
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("snapshot", newCartView(store.Snapshot()))
	c.Writer.Flush()

	requestLog(c).Debugw("cart_stream_open", "session_id", sid, "watchers", store.Watchers())
	ctx := c.Request.Context()
	ticker := time.NewTicker(cartEventKeepAlive)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			requestLog(c).Debugw("cart_stream_closed", "session_id", sid)
			return
		case snapshot := <-updates:
			c.SSEvent("snapshot", newCartView(snapshot))
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			c.Writer.Flush()
		}
	}
}
