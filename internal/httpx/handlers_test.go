package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futurewear/storefront/internal/auth"
	"github.com/futurewear/storefront/internal/cart"
	"github.com/futurewear/storefront/internal/catalog"
	"github.com/futurewear/storefront/internal/checkout"
	"github.com/futurewear/storefront/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSubmitter struct{ orders []orders.Order }

func (m *memSubmitter) Insert(_ context.Context, o orders.Order) error {
	m.orders = append(m.orders, o)
	return nil
}

type env struct {
	router    http.Handler
	submitter *memSubmitter
	cookies   []*http.Cookie
}

func newEnv(t *testing.T) *env {
	t.Helper()
	cat := catalog.NewMemory(catalog.Seed())
	carts := cart.NewStore(nil)
	users := auth.NewStore(auth.MockProvider{}, nil)
	sub := &memSubmitter{}
	svc := &checkout.Service{Orders: sub, ServiceName: "test-api"}

	r := NewRouter()
	(&CatalogHandler{Catalog: cat}).Register(r)
	(&CartHandler{Carts: carts, Catalog: cat}).Register(r)
	(&CheckoutHandler{Carts: carts, Checkout: svc, Auth: users}).Register(r)
	(&AuthHandler{Auth: users, Carts: carts}).Register(r)
	return &env{router: r, submitter: sub}
}

// do keeps the session cookie across requests, like a browser would.
func (e *env) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	if cs := rec.Result().Cookies(); len(cs) > 0 {
		e.cookies = cs
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func validCheckout() CheckoutReq {
	return CheckoutReq{CustomerInfo: orders.CustomerInfo{
		FullName: "Nadia Rahman",
		Phone:    "01712345678",
		Address:  "House 12, Road 5, Block C",
		City:     "Dhaka",
		Area:     "Banani",
	}}
}

func TestListProducts(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ps := decode[[]catalog.Product](t, rec)
	assert.Len(t, ps, len(catalog.Seed()))

	rec = e.do(t, http.MethodGet, "/products?category=Hoodies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]catalog.Product](t, rec), 1)

	rec = e.do(t, http.MethodGet, "/products?sort=price-low", nil)
	low := decode[[]catalog.Product](t, rec)
	assert.Equal(t, "Holographic Tee", low[0].Name)
}

func TestGetProduct(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/products/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartFlow(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/cart/items", AddItemReq{ProductID: "1", Size: "M", Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)
	c := decode[CartResp](t, rec)
	assert.Equal(t, 2, c.TotalItems)
	assert.Equal(t, 6999, c.Subtotal)

	// merge on same key
	rec = e.do(t, http.MethodPost, "/cart/items", AddItemReq{ProductID: "1", Size: "M", Quantity: 1})
	c = decode[CartResp](t, rec)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)

	rec = e.do(t, http.MethodPut, "/cart/items", UpdateItemReq{ProductID: "1", Size: "M", Quantity: 0})
	c = decode[CartResp](t, rec)
	assert.Empty(t, c.Items)
}

func TestAddItemValidatesSizeAndQuantity(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/cart/items", AddItemReq{ProductID: "1", Size: "XS", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/cart/items", AddItemReq{ProductID: "1", Size: "M", Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/cart/items", AddItemReq{ProductID: "999", Size: "M", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveAndClear(t *testing.T) {
	e := newEnv(t)

	e.do(t, http.MethodPost, "/cart/items", AddItemReq{ProductID: "1", Size: "M", Quantity: 1})
	e.do(t, http.MethodPost, "/cart/items", AddItemReq{ProductID: "3", Size: "S", Quantity: 2})

	rec := e.do(t, http.MethodDelete, "/cart/items?product_id=1&size=M", nil)
	c := decode[CartResp](t, rec)
	require.Len(t, c.Items, 1)

	rec = e.do(t, http.MethodDelete, "/cart", nil)
	c = decode[CartResp](t, rec)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems)
}

func TestCheckoutEmptyCart(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/checkout", validCheckout())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, e.submitter.orders)
}

func TestCheckoutValidation(t *testing.T) {
	e := newEnv(t)
	e.do(t, http.MethodPost, "/cart/items", AddItemReq{ProductID: "1", Size: "M", Quantity: 1})

	req := validCheckout()
	req.CustomerInfo.Phone = "123"
	rec := e.do(t, http.MethodPost, "/checkout", req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Fields, "phone")

	// cart survives the failed attempt
	c := decode[CartResp](t, e.do(t, http.MethodGet, "/cart", nil))
	assert.Equal(t, 1, c.TotalItems)
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	e := newEnv(t)
	e.do(t, http.MethodPost, "/cart/items", AddItemReq{ProductID: "1", Size: "M", Quantity: 2})

	rec := e.do(t, http.MethodPost, "/checkout", validCheckout())
	require.Equal(t, http.StatusAccepted, rec.Code)
	o := decode[orders.Order](t, rec)
	assert.Equal(t, 6999+140, o.Total)
	assert.Equal(t, 140, o.DeliveryCharge)

	require.Len(t, e.submitter.orders, 1)

	c := decode[CartResp](t, e.do(t, http.MethodGet, "/cart", nil))
	assert.Empty(t, c.Items)
}

func TestCheckoutAttributesLoggedInUser(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/auth/login", LoginReq{Email: "nadia@example.com", Password: "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	u := decode[auth.User](t, rec)

	e.do(t, http.MethodPost, "/cart/items", AddItemReq{ProductID: "1", Size: "M", Quantity: 1})
	rec = e.do(t, http.MethodPost, "/checkout", validCheckout())
	require.Equal(t, http.StatusAccepted, rec.Code)
	o := decode[orders.Order](t, rec)
	assert.Equal(t, u.ID, o.UserID)
}

func TestAuthFlow(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodPost, "/auth/login", LoginReq{Email: "nadia@example.com", Password: "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nadia", decode[auth.User](t, rec).Name)

	rec = e.do(t, http.MethodPatch, "/auth/profile", map[string]string{"city": "Dhaka"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Dhaka", decode[auth.User](t, rec).City)

	rec = e.do(t, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = e.do(t, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Logout tears the whole session down, cart included.
func TestLogoutDropsCart(t *testing.T) {
	e := newEnv(t)
	e.do(t, http.MethodPost, "/auth/login", LoginReq{Email: "a@b.c", Password: "pw"})
	e.do(t, http.MethodPost, "/cart/items", AddItemReq{ProductID: "1", Size: "M", Quantity: 1})

	e.do(t, http.MethodPost, "/auth/logout", nil)

	c := decode[CartResp](t, e.do(t, http.MethodGet, "/cart", nil))
	assert.Empty(t, c.Items)
}
