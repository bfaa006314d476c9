package checkout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kantin-next/internal/cart"
	"github.com/kantin-next/internal/constants"
	"github.com/kantin-next/internal/logger"
	"github.com/kantin-next/internal/metrics"
	"github.com/kantin-next/internal/session"
)

var (
	// ErrSubmissionInFlight 已有提交在进行中
	ErrSubmissionInFlight = errors.New("checkout submission already in flight")
	// ErrUnauthenticated 未登录
	ErrUnauthenticated = session.ErrUnauthenticated
	// ErrEmptyCart 购物车为空
	ErrEmptyCart = errors.New("cart is empty")
)

const defaultSubmitTimeout = 20 * time.Second

// Outcome 成功下单的结果
type Outcome struct {
	Order *OrderResult `json:"order"`
}

// Flow 单个会话的结账流程
// 同一时间最多一个提交在进行，重复提交直接拒绝
type Flow struct {
	sessionID string
	store     *cart.Store
	orders    OrderAPI
	recorder  Recorder
	metrics   *metrics.Metrics
	timeout   time.Duration
	now       func() time.Time

	inFlight atomic.Bool
}

// InFlight 是否有提交在进行
func (f *Flow) InFlight() bool {
	return f.inFlight.Load()
}

type submitResult struct {
	outcome *Outcome
	err     error
}

// waiter 协调调用方与后台下单之间谁先结束
type waiter struct {
	mu        sync.Mutex
	finished  bool
	abandoned bool
}

// Submit 提交订单
// 本地校验失败不会发起网络请求；下单请求不随调用方取消而中断，
// 结果返回时调用方已离开也会照常生效（成功仍扣减购物车）
func (f *Flow) Submit(ctx context.Context, user *session.Record, payment Payment) (*Outcome, error) {
	if !f.inFlight.CompareAndSwap(false, true) {
		f.metrics.RecordInFlightRejection()
		return nil, ErrSubmissionInFlight
	}

	req, normalized, err := f.prepare(user, payment)
	if err != nil {
		f.inFlight.Store(false)
		f.metrics.RecordValidationFailure(validationReason(err))
		return nil, err
	}

	done := make(chan submitResult, 1)
	w := &waiter{}
	go func() {
		outcome, err := f.execute(ctx, req, normalized)
		f.inFlight.Store(false)
		done <- submitResult{outcome: outcome, err: err}

		w.mu.Lock()
		w.finished = true
		abandoned := w.abandoned
		w.mu.Unlock()
		if abandoned {
			f.metrics.RecordUnobservedResult()
			logger.Warnw("checkout_result_unobserved",
				"session_id", f.sessionID,
				"user_id", req.UserID,
				"success", err == nil,
				"error", err,
			)
		}
	}()

	select {
	case res := <-done:
		return res.outcome, res.err
	case <-ctx.Done():
		w.mu.Lock()
		if w.finished {
			w.mu.Unlock()
			res := <-done
			return res.outcome, res.err
		}
		w.abandoned = true
		w.mu.Unlock()
		return nil, ctx.Err()
	}
}

func (f *Flow) prepare(user *session.Record, payment Payment) (OrderRequest, Payment, error) {
	if err := session.RequireAuth(user); err != nil {
		return OrderRequest{}, Payment{}, err
	}
	snap := f.store.Snapshot()
	if len(snap.Lines) == 0 {
		return OrderRequest{}, Payment{}, ErrEmptyCart
	}
	normalized, err := payment.Normalize()
	if err != nil {
		return OrderRequest{}, Payment{}, err
	}
	items := make([]OrderItem, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		items = append(items, OrderItem{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	return OrderRequest{
		UserID:        user.UserID,
		Items:         items,
		PaymentMethod: normalized.WireValue(),
		TotalAmount:   snap.TotalAmount,
	}, normalized, nil
}

func (f *Flow) execute(parent context.Context, req OrderRequest, payment Payment) (*Outcome, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), f.timeout)
	defer cancel()

	started := f.now()
	result, err := f.orders.CreateOrder(ctx, req)
	duration := f.now().Sub(started)

	attempt := Attempt{
		SessionID:     f.sessionID,
		UserID:        req.UserID,
		PaymentMethod: req.PaymentMethod,
		ItemCount:     itemCount(req.Items),
		TotalAmount:   req.TotalAmount,
		Duration:      duration,
		At:            started,
	}

	if err != nil {
		classified := classify(err)
		attempt.Result = constants.CheckoutResultFailed
		attempt.ErrorMessage = classified.Error()
		f.metrics.RecordCheckout(constants.CheckoutResultFailed, duration)
		f.record(ctx, attempt)
		logger.Warnw("checkout_submit_failed",
			"session_id", f.sessionID,
			"user_id", req.UserID,
			"payment_method", payment.Method,
			"error", err,
		)
		return nil, classified
	}

	// 只扣掉本次提交的数量，下单期间加入的菜单留在购物车
	f.store.Deduct(orderedQuantities(req.Items))

	attempt.Result = constants.CheckoutResultSuccess
	attempt.OrderID = result.OrderID
	f.metrics.RecordCheckout(constants.CheckoutResultSuccess, duration)
	f.record(ctx, attempt)
	logger.Infow("checkout_submit_succeeded",
		"session_id", f.sessionID,
		"user_id", req.UserID,
		"order_id", result.OrderID,
		"payment_method", payment.Method,
		"total_amount", req.TotalAmount.String(),
	)
	return &Outcome{Order: result}, nil
}

func (f *Flow) record(ctx context.Context, attempt Attempt) {
	if f.recorder == nil {
		return
	}
	f.recorder.RecordAttempt(ctx, attempt)
}

func orderedQuantities(items []OrderItem) map[uint]int {
	ordered := make(map[uint]int, len(items))
	for _, item := range items {
		ordered[item.ItemID] += item.Quantity
	}
	return ordered
}

func itemCount(items []OrderItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

func validationReason(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrEwalletIncomplete):
		return "ewallet_incomplete"
	case errors.Is(err, ErrPhoneNumberInvalid):
		return "phone_invalid"
	default:
		return "payment_invalid"
	}
}
