package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDecodeDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode defaults failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("server port want 8080 got %s", cfg.Server.Port)
	}
	if cfg.Backend.AdminRoleID != 2 {
		t.Fatalf("admin role id want 2 got %d", cfg.Backend.AdminRoleID)
	}
	if cfg.Session.TTL() != 24*time.Hour {
		t.Fatalf("session ttl want 24h got %s", cfg.Session.TTL())
	}
	if cfg.Session.CartSweepInterval() != 5*time.Minute {
		t.Fatalf("cart sweep interval want 5m got %s", cfg.Session.CartSweepInterval())
	}
	if cfg.Catalog.CacheTTL() != time.Minute {
		t.Fatalf("catalog ttl want 1m got %s", cfg.Catalog.CacheTTL())
	}
	if cfg.Queue.Queues["default"] != 10 {
		t.Fatalf("default queue weight want 10 got %d", cfg.Queue.Queues["default"])
	}
}

func TestDecodeTrimsBackendURL(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("backend.base_url", " http://kantin.local:6543/ ")

	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Backend.BaseURL != "http://kantin.local:6543" {
		t.Fatalf("unexpected base url %q", cfg.Backend.BaseURL)
	}
}

func TestYAMLOverridesDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	raw := `
checkout:
  submit_timeout_seconds: 5
backend:
  timeout_seconds: 0
`
	if err := v.ReadConfig(strings.NewReader(raw)); err != nil {
		t.Fatalf("read yaml failed: %v", err)
	}
	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Checkout.SubmitTimeout() != 5*time.Second {
		t.Fatalf("submit timeout want 5s got %s", cfg.Checkout.SubmitTimeout())
	}
	if cfg.Backend.Timeout() != 15*time.Second {
		t.Fatalf("zero backend timeout should fall back to 15s, got %s", cfg.Backend.Timeout())
	}
}
