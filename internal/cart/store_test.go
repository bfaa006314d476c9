package cart

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/kantin-next/internal/models"
	"github.com/shopspring/decimal"
)

var moneyComparer = cmp.Comparer(func(x, y models.Money) bool {
	return x.Equal(y.Decimal)
})

func item(id uint, price int64) Item {
	return Item{ID: id, Name: gofakeit.ProductName(), Price: models.NewMoneyFromInt(price)}
}

func TestAddItemRepeatedIDAggregatesQuantity(t *testing.T) {
	for round := 0; round < 20; round++ {
		store := NewStore()
		n := gofakeit.Number(1, 30)
		it := item(uint(gofakeit.Number(1, 1000)), 12000)
		for i := 0; i < n; i++ {
			store.AddItem(it)
		}
		lines := store.Lines()
		if len(lines) != 1 {
			t.Fatalf("round %d: expected single line, got %d", round, len(lines))
		}
		if lines[0].Quantity != n {
			t.Fatalf("round %d: quantity want %d got %d", round, n, lines[0].Quantity)
		}
	}
}

func TestAddItemKeepsInsertionOrderAndAddTimeSnapshot(t *testing.T) {
	store := NewStore()
	store.AddItem(Item{ID: 3, Name: "Nasi Goreng", Price: models.NewMoneyFromInt(15000)})
	store.AddItem(Item{ID: 1, Name: "Es Teh", Price: models.NewMoneyFromInt(5000)})
	// 价格变化不影响已加入的行
	store.AddItem(Item{ID: 3, Name: "Nasi Goreng Spesial", Price: models.NewMoneyFromInt(99000)})

	want := []Line{
		{ItemID: 3, Name: "Nasi Goreng", UnitPrice: models.NewMoneyFromInt(15000), Quantity: 2},
		{ItemID: 1, Name: "Es Teh", UnitPrice: models.NewMoneyFromInt(5000), Quantity: 1},
	}
	if diff := cmp.Diff(want, store.Lines(), moneyComparer); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	store := NewStore()
	store.AddItem(item(1, 15000))
	store.AddItem(item(2, 5000))
	before := store.Lines()

	notified := 0
	store.Subscribe(func(Snapshot) { notified++ })
	store.RemoveItem(99)
	store.RemoveItem(99)

	if diff := cmp.Diff(before, store.Lines(), moneyComparer); diff != "" {
		t.Fatalf("absent remove changed lines:\n%s", diff)
	}
	if notified != 0 {
		t.Fatalf("absent remove should not notify, got %d", notified)
	}
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	a := NewStore()
	b := NewStore()
	for _, s := range []*Store{a, b} {
		s.AddItem(item(1, 15000))
		s.AddItem(item(2, 5000))
		s.AddItem(item(2, 5000))
	}
	if err := a.UpdateQuantity(2, 0); err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	b.RemoveItem(2)

	if diff := cmp.Diff(b.Lines(), a.Lines(), moneyComparer); diff != "" {
		t.Fatalf("update(0) differs from remove:\n%s", diff)
	}
	if a.Len() != 1 {
		t.Fatalf("expected one line left, got %d", a.Len())
	}
}

func TestUpdateQuantityNegativeRejected(t *testing.T) {
	store := NewStore()
	store.AddItem(item(1, 15000))
	store.AddItem(item(1, 15000))

	err := store.UpdateQuantity(1, -1)
	if !errors.Is(err, ErrNegativeQuantity) {
		t.Fatalf("expected ErrNegativeQuantity, got %v", err)
	}
	if got := store.Lines()[0].Quantity; got != 2 {
		t.Fatalf("negative update must leave quantity unchanged, got %d", got)
	}
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	store := NewStore()
	store.AddItem(item(7, 8000))
	if err := store.UpdateQuantity(7, 4); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := store.Lines()[0].Quantity; got != 4 {
		t.Fatalf("quantity want 4 got %d", got)
	}
	// 不存在的行不会被创建
	if err := store.UpdateQuantity(8, 3); err != nil {
		t.Fatalf("update absent failed: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("update on absent id should not add a line")
	}
}

func TestTotalAmount(t *testing.T) {
	store := NewStore()
	store.AddItem(item(1, 15000))
	store.AddItem(item(1, 15000))
	for i := 0; i < 3; i++ {
		store.AddItem(item(2, 5000))
	}
	if total := store.TotalAmount(); !total.Equal(decimal.NewFromInt(45000)) {
		t.Fatalf("total want 45000 got %s", total)
	}
}

func TestTotalAmountMatchesLineSum(t *testing.T) {
	for round := 0; round < 20; round++ {
		store := NewStore()
		want := decimal.Zero
		lines := gofakeit.Number(1, 8)
		for id := 1; id <= lines; id++ {
			price := decimal.NewFromFloat(gofakeit.Price(1000, 50000)).Round(2)
			qty := gofakeit.Number(1, 5)
			it := Item{ID: uint(id), Name: gofakeit.ProductName(), Price: models.NewMoneyFromDecimal(price)}
			for i := 0; i < qty; i++ {
				store.AddItem(it)
			}
			want = want.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		}
		if got := store.TotalAmount(); !got.Equal(want.Round(2)) {
			t.Fatalf("round %d: total want %s got %s", round, want.StringFixed(2), got)
		}
	}
}

func TestClearEmptiesCart(t *testing.T) {
	store := NewStore()
	store.AddItem(item(1, 15000))
	store.AddItem(item(2, 5000))
	store.ToggleOpen()
	store.Clear()

	if store.Len() != 0 {
		t.Fatalf("expected empty cart after clear")
	}
	if !store.TotalAmount().IsZero() {
		t.Fatalf("expected zero total after clear, got %s", store.TotalAmount())
	}
	if !store.IsOpen() {
		t.Fatalf("clear must not touch drawer flag")
	}
}

func TestToggleAndCloseDoNotTouchLines(t *testing.T) {
	store := NewStore()
	store.AddItem(item(1, 15000))

	store.ToggleOpen()
	if !store.IsOpen() {
		t.Fatalf("toggle should open drawer")
	}
	store.ToggleOpen()
	if store.IsOpen() {
		t.Fatalf("second toggle should close drawer")
	}
	store.ToggleOpen()
	store.Close()
	store.Close()
	if store.IsOpen() {
		t.Fatalf("close should force drawer closed")
	}
	if store.Len() != 1 {
		t.Fatalf("drawer operations must not change lines")
	}
}

func TestSubscribeReceivesSnapshotsInOrder(t *testing.T) {
	store := NewStore()
	var calls []string
	var last Snapshot
	store.Subscribe(func(s Snapshot) {
		calls = append(calls, "first")
		last = s
	})
	unsubscribe := store.Subscribe(func(Snapshot) { calls = append(calls, "second") })

	store.AddItem(item(1, 15000))
	if store.Watchers() != 2 {
		t.Fatalf("expected 2 watchers, got %d", store.Watchers())
	}
	unsubscribe()
	unsubscribe()
	if store.Watchers() != 1 {
		t.Fatalf("expected 1 watcher after unsubscribe, got %d", store.Watchers())
	}
	store.AddItem(item(1, 15000))

	want := []string{"first", "second", "first"}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Fatalf("observer calls mismatch:\n%s", diff)
	}
	if last.ItemCount != 2 || !last.TotalAmount.Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("unexpected last snapshot: %+v", last)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	store := NewStore()
	store.AddItem(item(1, 15000))
	snap := store.Snapshot()
	snap.Lines[0].Quantity = 100

	if store.Lines()[0].Quantity != 1 {
		t.Fatalf("mutating snapshot must not change store")
	}
}

func TestDeductRemovesOnlyOrderedQuantities(t *testing.T) {
	store := NewStore()
	store.AddItem(Item{ID: 3, Name: "Nasi Goreng", Price: models.NewMoneyFromInt(15000)})
	store.AddItem(Item{ID: 3, Name: "Nasi Goreng", Price: models.NewMoneyFromInt(15000)})
	store.AddItem(Item{ID: 3, Name: "Nasi Goreng", Price: models.NewMoneyFromInt(15000)})
	store.AddItem(Item{ID: 4, Name: "Es Teh", Price: models.NewMoneyFromInt(5000)})
	store.AddItem(Item{ID: 9, Name: "Kerupuk", Price: models.NewMoneyFromInt(2000)})

	notified := 0
	store.Subscribe(func(Snapshot) { notified++ })

	store.Deduct(map[uint]int{3: 2, 4: 1, 77: 5})

	want := []Line{
		{ItemID: 3, Name: "Nasi Goreng", UnitPrice: models.NewMoneyFromInt(15000), Quantity: 1},
		{ItemID: 9, Name: "Kerupuk", UnitPrice: models.NewMoneyFromInt(2000), Quantity: 1},
	}
	if diff := cmp.Diff(want, store.Lines(), moneyComparer); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if notified != 1 {
		t.Fatalf("expected one notification, got %d", notified)
	}

	store.Deduct(map[uint]int{77: 1})
	store.Deduct(nil)
	if notified != 1 {
		t.Fatalf("deducting absent items must not notify, got %d", notified)
	}
}
