package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kantin-next/internal/config"
	"github.com/kantin-next/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.BackendConfig{BaseURL: server.URL + "/", TimeoutSeconds: 2}, server.Client())
}

func TestCreateOrderSendsWirePayload(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 5, body["user_id"])
		assert.Equal(t, "Dana", body["pembayaran"])
		assert.Equal(t, "45000.00", body["total_harga"])
		items := body["items"].([]interface{})
		require.Len(t, items, 2)
		first := items[0].(map[string]interface{})
		assert.EqualValues(t, 3, first["menu_id"])
		assert.EqualValues(t, 2, first["jumlah"])

		_, _ = w.Write([]byte(`{"success":true,"order":{"order_id":42,"user_id":5,"status":"pending","total_harga":45000,"pembayaran":"Dana"},"total_harga":45000}`))
	})

	result, err := client.CreateOrder(context.Background(), CreateOrderInput{
		UserID:     5,
		Items:      []OrderItem{{MenuID: 3, Jumlah: 2}, {MenuID: 4, Jumlah: 3}},
		Pembayaran: "Dana",
		TotalHarga: models.NewMoneyFromInt(45000),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 42, result.Order.OrderID)
	assert.Equal(t, "45000.00", result.TotalHarga.String())
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestCreateOrderSurfacesServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Menu dengan ID 9 tidak ditemukan"}`))
	})

	_, err := client.CreateOrder(context.Background(), CreateOrderInput{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequestRejected))
	assert.Equal(t, "Menu dengan ID 9 tidak ditemukan", MessageOf(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestCreateOrderSuccessFalseIsRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"Stok habis"}`))
	})
	_, err := client.CreateOrder(context.Background(), CreateOrderInput{UserID: 1})
	assert.ErrorIs(t, err, ErrRequestRejected)
	assert.Equal(t, "Stok habis", MessageOf(err))
}

func TestTransportFailureWrapsRequestFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(config.BackendConfig{BaseURL: url}, nil)
	_, err := client.ListMenus(context.Background())
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Empty(t, MessageOf(err))
}

func TestUndecodableBodyWrapsResponseInvalid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"menus":"oops"}`))
	})
	_, err := client.ListMenus(context.Background())
	assert.ErrorIs(t, err, ErrResponseInvalid)
}

func TestTimeoutWrapsRequestFailed(t *testing.T) {
	block := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	})
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.ListKategori(ctx)
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestLoginParsesUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"token":"dummy-token","user":{"user_id":3,"nama_lengkap":"Siti","email":"siti@kampus.ac.id","role_name":null}}`))
	})
	result, err := client.Login(context.Background(), "siti@kampus.ac.id", "rahasia")
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.User.UserID)
	assert.Equal(t, "Siti", result.User.NamaLengkap)
	assert.Empty(t, result.User.RoleName)
}

func TestLoginRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Email atau password salah"}`))
	})
	_, err := client.Login(context.Background(), "x@y.z", "bad")
	assert.ErrorIs(t, err, ErrRequestRejected)
	assert.Equal(t, "Email atau password salah", MessageOf(err))
}

func TestMenuEndpoints(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/menu":
			_, _ = w.Write([]byte(`{"menus":[{"menu_id":1,"kategori_id":2,"nama_menu":"Nasi Goreng","harga":15000,"status":"tersedia","kategori":{"kategori_id":2,"nama_kategori":"Makanan","icon":"🍛"}}]}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/menu/1":
			_, _ = w.Write([]byte(`{"menu":{"menu_id":1,"nama_menu":"Nasi Goreng","harga":15000}}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/menu/1":
			_, _ = w.Write([]byte(`{"success":true}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/orders/history/3":
			_, _ = w.Write([]byte(`{"orders":[{"order_id":1,"user_id":3,"status":"completed","total_harga":"20000"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		}
	})
	ctx := context.Background()

	menus, err := client.ListMenus(ctx)
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, "Makanan", menus[0].Kategori.NamaKategori)
	assert.Equal(t, "15000.00", menus[0].Harga.String())

	menu, err := client.GetMenu(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Nasi Goreng", menu.NamaMenu)

	require.NoError(t, client.DeleteMenu(ctx, 1))

	history, err := client.OrderHistory(ctx, 3)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "completed", history[0].Status)

	_, err = client.GetMenu(ctx, 99)
	assert.ErrorIs(t, err, ErrRequestRejected)
	assert.Equal(t, "not found", MessageOf(err))
}
