package cart

import (
	"fmt"
	"testing"
	"time"
)

func TestRegistryGetCreatesOncePerSession(t *testing.T) {
	registry := NewRegistry()
	created := 0
	registry.OnCreate(func(string, *Store) { created++ })

	a := registry.Get("sid-a")
	if registry.Get("sid-a") != a {
		t.Fatalf("expected same store for same session")
	}
	if registry.Get("sid-b") == a {
		t.Fatalf("expected different store for another session")
	}
	if created != 2 {
		t.Fatalf("expected two creations, got %d", created)
	}
	if registry.Len() != 2 {
		t.Fatalf("expected two stores, got %d", registry.Len())
	}
}

func TestRegistryDrop(t *testing.T) {
	registry := NewRegistry()
	store := registry.Get("sid")
	store.AddItem(Item{ID: 1, Name: "Es Jeruk"})

	if !registry.Drop("sid") {
		t.Fatalf("expected drop to report removal")
	}
	if registry.Drop("sid") {
		t.Fatalf("second drop should report nothing removed")
	}
	if _, ok := registry.Lookup("sid"); ok {
		t.Fatalf("dropped store should not be found")
	}
	if registry.Get("sid").Len() != 0 {
		t.Fatalf("recreated store should be empty")
	}
}

func TestRegistrySweepEvictsIdleStores(t *testing.T) {
	registry := NewRegistry()
	clock := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return clock }

	for i := 0; i < 500; i++ {
		registry.Get(fmt.Sprintf("guest-%d", i))
	}
	clock = clock.Add(30 * time.Minute)
	registry.Get("active").AddItem(Item{ID: 1, Name: "Es Jeruk"})
	registry.Get("guest-7")

	clock = clock.Add(31 * time.Minute)
	evicted := registry.Sweep(time.Hour, nil)
	if len(evicted) != 499 {
		t.Fatalf("expected 499 idle stores evicted, got %d", len(evicted))
	}
	if registry.Len() != 2 {
		t.Fatalf("expected two touched stores kept, got %d", registry.Len())
	}
	if store, ok := registry.Lookup("active"); !ok || store.Len() != 1 {
		t.Fatalf("recently touched store must survive")
	}
	if _, ok := registry.Lookup("guest-7"); !ok {
		t.Fatalf("store touched by Get must survive")
	}
}

func TestRegistrySweepHonoursKeep(t *testing.T) {
	registry := NewRegistry()
	clock := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return clock }
	registry.Get("paying")
	registry.Get("idle")

	clock = clock.Add(2 * time.Hour)
	evicted := registry.Sweep(time.Hour, func(sid string) bool { return sid == "paying" })
	if len(evicted) != 1 || evicted[0] != "idle" {
		t.Fatalf("unexpected evicted: %v", evicted)
	}
	if _, ok := registry.Lookup("paying"); !ok {
		t.Fatalf("kept session must stay registered")
	}
	if registry.Sweep(0, nil) != nil {
		t.Fatalf("non-positive idle window disables sweeping")
	}
}

func TestRegistryRename(t *testing.T) {
	registry := NewRegistry()
	guest := registry.Get("guest")
	guest.AddItem(Item{ID: 2, Name: "Bakso"})

	if !registry.Rename("guest", "user") {
		t.Fatalf("expected rename to succeed")
	}
	if _, ok := registry.Lookup("guest"); ok {
		t.Fatalf("old session id must be released")
	}
	if registry.Get("user") != guest {
		t.Fatalf("renamed session should keep the same store")
	}
	registry.Get("other")
	if registry.Rename("user", "other") {
		t.Fatalf("rename onto an existing cart must be refused")
	}
	if registry.Rename("missing", "x") {
		t.Fatalf("rename of unknown session must report false")
	}
}
