package checkout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kantin-next/internal/backend"
	"github.com/kantin-next/internal/cart"
	"github.com/kantin-next/internal/constants"
	"github.com/kantin-next/internal/models"
	"github.com/kantin-next/internal/session"

	"go.uber.org/goleak"
)

type fakeOrders struct {
	calls   int32
	gate    chan struct{}
	err     error
	mu      sync.Mutex
	request OrderRequest
}

func (f *fakeOrders) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	f.request = req
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return &OrderResult{OrderID: 77, TotalAmount: req.TotalAmount, Status: constants.OrderStatusPending}, nil
}

func (f *fakeOrders) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}

type fakeRecorder struct {
	mu       sync.Mutex
	attempts []Attempt
}

func (r *fakeRecorder) RecordAttempt(_ context.Context, attempt Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, attempt)
}

func (r *fakeRecorder) Attempts() []Attempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Attempt(nil), r.attempts...)
}

var customer = &session.Record{UserID: 5, DisplayName: "Budi", Role: constants.RoleCustomer}

func newFlow(orders OrderAPI, recorder Recorder) (*Flow, *cart.Store) {
	store := cart.NewStore()
	svc := NewService(orders, recorder, nil, time.Second)
	return svc.Flow("sid", store), store
}

func fillCart(store *cart.Store) {
	nasi := cart.Item{ID: 3, Name: "Nasi Goreng", Price: models.NewMoneyFromInt(15000)}
	teh := cart.Item{ID: 4, Name: "Es Teh", Price: models.NewMoneyFromInt(5000)}
	store.AddItem(nasi)
	store.AddItem(nasi)
	for i := 0; i < 3; i++ {
		store.AddItem(teh)
	}
}

func countClears(store *cart.Store) *int32 {
	var clears int32
	store.Subscribe(func(s cart.Snapshot) {
		if len(s.Lines) == 0 {
			atomic.AddInt32(&clears, 1)
		}
	})
	return &clears
}

func TestSubmitEmptyCartNeverCallsAPI(t *testing.T) {
	defer goleak.VerifyNone(t)
	orders := &fakeOrders{}
	flow, _ := newFlow(orders, nil)

	_, err := flow.Submit(context.Background(), customer, Payment{Method: constants.PaymentMethodCash})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if orders.Calls() != 0 {
		t.Fatalf("empty cart must not call order api")
	}
	if flow.InFlight() {
		t.Fatalf("validation failure must release in-flight flag")
	}
}

func TestSubmitLocalValidation(t *testing.T) {
	defer goleak.VerifyNone(t)
	cases := []struct {
		name    string
		user    *session.Record
		payment Payment
		want    error
	}{
		{name: "guest", user: nil, payment: Payment{Method: "qris"}, want: ErrUnauthenticated},
		{name: "unknown_method", user: customer, payment: Payment{Method: "kartu"}, want: ErrPaymentMethodInvalid},
		{name: "ewallet_without_phone", user: customer, payment: Payment{Method: "ewallet", Provider: "Dana"}, want: ErrEwalletIncomplete},
		{name: "ewallet_without_provider", user: customer, payment: Payment{Method: "ewallet", PhoneNumber: "081234567890"}, want: ErrEwalletIncomplete},
		{name: "ewallet_bad_phone", user: customer, payment: Payment{Method: "ewallet", Provider: "OVO", PhoneNumber: "12345"}, want: ErrPhoneNumberInvalid},
		{name: "ewallet_unknown_provider", user: customer, payment: Payment{Method: "ewallet", Provider: "LinkAja", PhoneNumber: "081234567890"}, want: ErrPaymentMethodInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orders := &fakeOrders{}
			flow, store := newFlow(orders, nil)
			fillCart(store)
			clears := countClears(store)

			_, err := flow.Submit(context.Background(), tc.user, tc.payment)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if orders.Calls() != 0 {
				t.Fatalf("local validation must not call order api")
			}
			if atomic.LoadInt32(clears) != 0 || store.Len() != 2 {
				t.Fatalf("local validation must not touch cart")
			}
		})
	}
}

func TestSubmitSuccessClearsOnce(t *testing.T) {
	defer goleak.VerifyNone(t)
	orders := &fakeOrders{}
	recorder := &fakeRecorder{}
	flow, store := newFlow(orders, recorder)
	fillCart(store)
	clears := countClears(store)

	outcome, err := flow.Submit(context.Background(), customer, Payment{
		Method: "ewallet", Provider: "gopay", PhoneNumber: "+62 812-3456-7890",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Order.OrderID != 77 {
		t.Fatalf("unexpected outcome: %+v", outcome.Order)
	}
	if got := atomic.LoadInt32(clears); got != 1 {
		t.Fatalf("expected exactly one clear, got %d", got)
	}
	if store.Len() != 0 {
		t.Fatalf("cart should be empty after success")
	}

	orders.mu.Lock()
	req := orders.request
	orders.mu.Unlock()
	if req.PaymentMethod != constants.EwalletGoPay {
		t.Fatalf("ewallet wire value should be provider, got %s", req.PaymentMethod)
	}
	if req.UserID != 5 || len(req.Items) != 2 || req.Items[0].Quantity != 2 || req.Items[1].Quantity != 3 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.TotalAmount.String() != "45000.00" {
		t.Fatalf("unexpected total: %s", req.TotalAmount)
	}

	attempts := recorder.Attempts()
	if len(attempts) != 1 || attempts[0].Result != constants.CheckoutResultSuccess || attempts[0].OrderID != 77 || attempts[0].ItemCount != 5 {
		t.Fatalf("unexpected attempts: %+v", attempts)
	}
}

func TestSubmitFailureLeavesCart(t *testing.T) {
	defer goleak.VerifyNone(t)
	orders := &fakeOrders{err: &backend.APIError{Status: 400, Message: "Menu dengan ID 3 tidak ditemukan"}}
	recorder := &fakeRecorder{}
	flow, store := newFlow(orders, recorder)
	fillCart(store)
	clears := countClears(store)

	_, err := flow.Submit(context.Background(), customer, Payment{Method: "qris"})
	if !errors.Is(err, ErrOrderRejected) {
		t.Fatalf("expected ErrOrderRejected, got %v", err)
	}
	if ServerMessage(err) != "Menu dengan ID 3 tidak ditemukan" {
		t.Fatalf("server message should be surfaced verbatim, got %q", ServerMessage(err))
	}
	if atomic.LoadInt32(clears) != 0 || store.Len() != 2 {
		t.Fatalf("failed checkout must not clear cart")
	}
	attempts := recorder.Attempts()
	if len(attempts) != 1 || attempts[0].Result != constants.CheckoutResultFailed {
		t.Fatalf("expected failed attempt recorded, got %+v", attempts)
	}
}

func TestSubmitTransportFailureUsesGenericError(t *testing.T) {
	defer goleak.VerifyNone(t)
	orders := &fakeOrders{err: backend.ErrRequestFailed}
	flow, store := newFlow(orders, nil)
	fillCart(store)

	_, err := flow.Submit(context.Background(), customer, Payment{Method: "tunai"})
	if !errors.Is(err, ErrOrderFailed) || errors.Is(err, ErrOrderRejected) {
		t.Fatalf("expected ErrOrderFailed, got %v", err)
	}
	if ServerMessage(err) != "" {
		t.Fatalf("expected no server message")
	}
	if store.Len() != 2 {
		t.Fatalf("failed checkout must not clear cart")
	}
}

func TestConcurrentSubmitCallsAPIOnce(t *testing.T) {
	defer goleak.VerifyNone(t)
	orders := &fakeOrders{gate: make(chan struct{})}
	flow, store := newFlow(orders, nil)
	fillCart(store)

	first := make(chan error, 1)
	go func() {
		_, err := flow.Submit(context.Background(), customer, Payment{Method: "qris"})
		first <- err
	}()
	waitFor(t, func() bool { return orders.Calls() == 1 })

	_, err := flow.Submit(context.Background(), customer, Payment{Method: "qris"})
	if !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}

	close(orders.gate)
	if err := <-first; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if orders.Calls() != 1 {
		t.Fatalf("expected exactly one api call, got %d", orders.Calls())
	}
	if flow.InFlight() {
		t.Fatalf("in-flight flag should be released")
	}
}

func TestManyConcurrentSubmitsOneCall(t *testing.T) {
	defer goleak.VerifyNone(t)
	orders := &fakeOrders{gate: make(chan struct{})}
	flow, store := newFlow(orders, nil)
	fillCart(store)

	var wg sync.WaitGroup
	var inFlight int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := flow.Submit(context.Background(), customer, Payment{Method: "qris"})
			if errors.Is(err, ErrSubmissionInFlight) {
				atomic.AddInt32(&inFlight, 1)
			}
		}()
	}
	waitFor(t, func() bool { return atomic.LoadInt32(&inFlight) == 9 })
	close(orders.gate)
	wg.Wait()

	if orders.Calls() != 1 {
		t.Fatalf("expected exactly one api call, got %d", orders.Calls())
	}
}

func TestCallerCancellationStillAppliesResult(t *testing.T) {
	defer goleak.VerifyNone(t)
	orders := &fakeOrders{gate: make(chan struct{})}
	recorder := &fakeRecorder{}
	flow, store := newFlow(orders, recorder)
	fillCart(store)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		_, err := flow.Submit(ctx, customer, Payment{Method: "qris"})
		result <- err
	}()
	waitFor(t, func() bool { return orders.Calls() == 1 })
	cancel()
	if err := <-result; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !flow.InFlight() {
		t.Fatalf("order call should still be in flight")
	}

	close(orders.gate)
	waitFor(t, func() bool { return !flow.InFlight() && len(recorder.Attempts()) == 1 })
	if store.Len() != 0 {
		t.Fatalf("late success must still clear the cart")
	}
}

func TestSubmitKeepsItemsAddedDuringFlight(t *testing.T) {
	defer goleak.VerifyNone(t)
	orders := &fakeOrders{gate: make(chan struct{})}
	flow, store := newFlow(orders, &fakeRecorder{})
	nasi := cart.Item{ID: 3, Name: "Nasi Goreng", Price: models.NewMoneyFromInt(15000)}
	store.AddItem(nasi)

	result := make(chan error, 1)
	go func() {
		_, err := flow.Submit(context.Background(), customer, Payment{Method: "tunai"})
		result <- err
	}()
	waitFor(t, func() bool { return orders.Calls() == 1 })

	// 下单期间另一个标签页继续加菜
	store.AddItem(cart.Item{ID: 4, Name: "Es Teh", Price: models.NewMoneyFromInt(5000)})
	store.AddItem(nasi)

	close(orders.gate)
	if err := <-result; err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	orders.mu.Lock()
	req := orders.request
	orders.mu.Unlock()
	if len(req.Items) != 1 || req.Items[0].ItemID != 3 || req.Items[0].Quantity != 1 {
		t.Fatalf("unexpected submitted items: %+v", req.Items)
	}
	if req.TotalAmount.String() != "15000.00" {
		t.Fatalf("total must match submitted lines, got %s", req.TotalAmount)
	}

	lines := store.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines added during flight must survive, got %+v", lines)
	}
	if lines[0].ItemID != 3 || lines[0].Quantity != 1 || lines[1].ItemID != 4 || lines[1].Quantity != 1 {
		t.Fatalf("unexpected remaining lines: %+v", lines)
	}
}

func TestServiceFlowPerSession(t *testing.T) {
	svc := NewService(&fakeOrders{}, nil, nil, 0)
	store := cart.NewStore()
	a := svc.Flow("a", store)
	if svc.Flow("a", store) != a {
		t.Fatalf("expected same flow for same session")
	}
	if svc.Flow("a", cart.NewStore()) == a {
		t.Fatalf("expected new flow when cart is recreated")
	}
	svc.Drop("a")
	if svc.Flow("a", store) == a {
		t.Fatalf("expected new flow after drop")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}
