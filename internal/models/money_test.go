package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyUnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	cases := map[string]string{
		`15000`:     "15000.00",
		`15000.5`:   "15000.50",
		`"5000"`:    "5000.00",
		`"12.345"`:  "12.35",
		`null`:      "0.00",
		`""`:        "0.00",
		`0.1`:       "0.10",
		`250000.00`: "250000.00",
	}
	for raw, want := range cases {
		var m Money
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			t.Fatalf("unmarshal %s failed: %v", raw, err)
		}
		if m.String() != want {
			t.Fatalf("unmarshal %s want %s got %s", raw, want, m.String())
		}
	}
}

func TestMoneyMarshalFixedTwoDecimals(t *testing.T) {
	body, err := json.Marshal(NewMoneyFromInt(45000))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(body) != `"45000.00"` {
		t.Fatalf("unexpected json %s", string(body))
	}
}

func TestMoneyArithmetic(t *testing.T) {
	total := NewMoneyFromInt(15000).Times(2).Add(NewMoneyFromInt(5000).Times(3))
	if !total.Equal(decimal.NewFromInt(45000)) {
		t.Fatalf("want 45000 got %s", total)
	}
	if !ZeroMoney().IsZero() {
		t.Fatalf("zero money should be zero")
	}
}
