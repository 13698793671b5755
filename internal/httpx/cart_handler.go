package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/futurewear/storefront/internal/cart"
	"github.com/futurewear/storefront/internal/catalog"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	Carts   *cart.Store
	Catalog catalog.Catalog
}

type AddItemReq struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type UpdateItemReq struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type CartResp struct {
	Items      []cart.LineItem `json:"items"`
	TotalItems int             `json:"total_items"`
	Subtotal   int             `json:"subtotal"`
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Get("/cart", h.getCart)
	r.Post("/cart/items", h.addItem)
	r.Put("/cart/items", h.updateItem)
	r.Delete("/cart/items", h.removeItem)
	r.Delete("/cart", h.clearCart)
}

func cartResp(c *cart.Cart) CartResp {
	return CartResp{Items: c.Snapshot(), TotalItems: c.TotalItems(), Subtotal: c.Subtotal()}
}

func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	c := h.Carts.Get(r.Context(), SessionID(r))
	writeJSON(w, http.StatusOK, cartResp(c))
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.ProductID == "" || req.Size == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Catalog.Get(ctx, req.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !p.InStock {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "product out of stock"})
		return
	}
	// size precondition is enforced here, not in the ledger
	if !p.HasSize(req.Size) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "size not available"})
		return
	}

	sid := SessionID(r)
	var out CartResp
	err = h.Carts.Mutate(ctx, sid, func(c *cart.Cart) error {
		if err := c.AddItem(p, req.Size, req.Quantity); err != nil {
			return err
		}
		out = cartResp(c)
		return nil
	})
	if errors.Is(err, cart.ErrInvalidQuantity) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CartHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.ProductID == "" || req.Size == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	var out CartResp
	_ = h.Carts.Mutate(r.Context(), SessionID(r), func(c *cart.Cart) error {
		c.UpdateQuantity(req.ProductID, req.Size, req.Quantity)
		out = cartResp(c)
		return nil
	})
	writeJSON(w, http.StatusOK, out)
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	size := r.URL.Query().Get("size")
	if productID == "" || size == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing product_id or size"})
		return
	}

	var out CartResp
	_ = h.Carts.Mutate(r.Context(), SessionID(r), func(c *cart.Cart) error {
		c.RemoveItem(productID, size)
		out = cartResp(c)
		return nil
	})
	writeJSON(w, http.StatusOK, out)
}

func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	var out CartResp
	_ = h.Carts.Mutate(r.Context(), SessionID(r), func(c *cart.Cart) error {
		c.Clear()
		out = cartResp(c)
		return nil
	})
	writeJSON(w, http.StatusOK, out)
}
