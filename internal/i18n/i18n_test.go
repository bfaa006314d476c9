package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kantin-next/internal/models"

	"github.com/gin-gonic/gin"
)

func newContext(target string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestResolveLocale(t *testing.T) {
	cases := []struct {
		name    string
		target  string
		headers map[string]string
		want    string
	}{
		{name: "default", target: "/", want: LocaleID},
		{name: "query", target: "/?lang=en", want: LocaleEN},
		{name: "header", target: "/", headers: map[string]string{"X-Locale": "en-US"}, want: LocaleEN},
		{name: "accept language", target: "/", headers: map[string]string{"Accept-Language": "en-GB,en;q=0.8"}, want: LocaleEN},
		{name: "unsupported falls back", target: "/", headers: map[string]string{"Accept-Language": "ja-JP"}, want: LocaleID},
		{name: "query wins", target: "/?lang=id", headers: map[string]string{"X-Locale": "en-US"}, want: LocaleID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveLocale(newContext(tc.target, tc.headers)); got != tc.want {
				t.Fatalf("want %s got %s", tc.want, got)
			}
		})
	}
}

func TestTFallsBack(t *testing.T) {
	if got := T(LocaleEN, "error.cart_empty"); got != "Select at least one item before checkout" {
		t.Fatalf("unexpected english text: %s", got)
	}
	if got := T("fr-FR", "error.login_invalid"); got != "Email atau password salah" {
		t.Fatalf("unknown locale must fall back to indonesian, got %s", got)
	}
	if got := T(LocaleID, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("missing key must return key, got %s", got)
	}
	if got := Sprintf(LocaleEN, "message.order_status_updated", 7, "completed"); got != "Order #7 is now completed" {
		t.Fatalf("unexpected formatted text: %s", got)
	}
}

func TestCatalogLocalesHaveSameKeys(t *testing.T) {
	for key := range catalog[LocaleID] {
		if _, ok := catalog[LocaleEN][key]; !ok {
			t.Fatalf("key %s missing in %s", key, LocaleEN)
		}
	}
	if len(catalog[LocaleID]) != len(catalog[LocaleEN]) {
		t.Fatalf("catalog sizes differ")
	}
}

func TestFormatRupiah(t *testing.T) {
	if got := FormatRupiah(models.NewMoneyFromInt(45000)); got != "Rp 45.000,00" {
		t.Fatalf("unexpected format: %s", got)
	}
	if got := FormatRupiah(models.ZeroMoney()); got != "Rp 0,00" {
		t.Fatalf("unexpected zero format: %s", got)
	}
}
