package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/futurewear/storefront/internal/auth"
	"github.com/futurewear/storefront/internal/cart"
	"github.com/futurewear/storefront/internal/checkout"
	"github.com/futurewear/storefront/internal/orders"
	"github.com/futurewear/storefront/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type CheckoutHandler struct {
	Carts    *cart.Store
	Checkout *checkout.Service
	Auth     *auth.Store
	Orders   *orders.Repo  // nil when running without Postgres
	Redis    *redis.Client // optional status cache
}

type CheckoutReq struct {
	CustomerInfo orders.CustomerInfo `json:"customer_info"`
	CouponCode   string              `json:"coupon_code,omitempty"`
}

func (h *CheckoutHandler) Register(r *chi.Mux) {
	r.Post("/checkout", h.placeOrder)
	r.Get("/orders", h.listMyOrders)
	r.Get("/orders/{id}", h.getOrderStatus)
}

// listMyOrders returns the logged-in user's order history.
func (h *CheckoutHandler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	u, ok := h.Auth.Current(r.Context(), SessionID(r))
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not logged in"})
		return
	}
	if h.Orders == nil {
		writeJSON(w, http.StatusOK, []orders.Order{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	out, err := h.Orders.ListByUser(ctx, u.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if out == nil {
		out = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CheckoutHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req CheckoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sid := SessionID(r)
	userID := ""
	if u, ok := h.Auth.Current(ctx, sid); ok {
		userID = u.ID
	}

	var placed orders.Order
	err := h.Carts.Mutate(ctx, sid, func(c *cart.Cart) error {
		var err error
		placed, err = h.Checkout.PlaceOrder(ctx, c, req.CustomerInfo, req.CouponCode, userID)
		return err
	})

	var verr *checkout.ValidationError
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "validation failed", "fields": verr.Fields})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.Redis != nil {
		statusKey := fmt.Sprintf(redisx.KeyOrderStatus, placed.ID)
		_ = h.Redis.Set(ctx, statusKey, `{"status":"PENDING"}`, redisx.TTLStatusCache).Err()
	}

	writeJSON(w, http.StatusAccepted, placed)
}

func (h *CheckoutHandler) getOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// cache first
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	if h.Orders == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	status, err := h.Orders.GetStatus(ctx, orderID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	body := map[string]any{"status": status}
	b, _ := json.Marshal(body)
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, b, redisx.TTLStatusCache).Err()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
