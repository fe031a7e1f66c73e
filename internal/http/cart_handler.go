package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wisnubjoey/crafthaven/internal/cart"
	"github.com/wisnubjoey/crafthaven/internal/checkout"
	"github.com/wisnubjoey/crafthaven/internal/domain"
	"github.com/wisnubjoey/crafthaven/internal/notify"
)

// ProductFetcher is the slice of the backend client the cart surface
// needs: resolving a product id into the snapshot data an add captures.
type ProductFetcher interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type CartHandler struct {
	products ProductFetcher
	notifier notify.Notifier
	timeout  time.Duration
}

func NewCartHandler(products ProductFetcher, notifier notify.Notifier, timeout time.Duration) *CartHandler {
	return &CartHandler{products: products, notifier: notifier, timeout: timeout}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items domain.Cart `json:"items"`
	Total float64     `json:"total"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session := cart.FromContext(ctx)
	items, err := session.Cart(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to load cart")
		return
	}

	respondJSON(w, http.StatusOK, CartResponseDTO{Items: items, Total: items.Total()})
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}

	product, err := h.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		h.notifier.Notify(ctx, notify.LevelError, "Gagal memuat produk")
		respondError(w, http.StatusBadGateway, "backend_unavailable", "failed to fetch product")
		return
	}

	session := cart.FromContext(ctx)
	items, err := session.Add(ctx, *product, req.Quantity)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to update cart")
		return
	}

	respondJSON(w, http.StatusOK, CartResponseDTO{Items: items, Total: items.Total()})
}

// PUT /api/v1/cart/items/{itemID}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session := cart.FromContext(ctx)
	items, err := session.UpdateQuantity(ctx, chi.URLParam(r, "itemID"), req.Quantity)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to update cart")
		return
	}

	respondJSON(w, http.StatusOK, CartResponseDTO{Items: items, Total: items.Total()})
}

// DELETE /api/v1/cart/items/{itemID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session := cart.FromContext(ctx)
	items, err := session.Remove(ctx, chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to update cart")
		return
	}

	respondJSON(w, http.StatusOK, CartResponseDTO{Items: items, Total: items.Total()})
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session := cart.FromContext(ctx)
	items, err := session.Clear(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to clear cart")
		return
	}

	respondJSON(w, http.StatusOK, CartResponseDTO{Items: items, Total: 0})
}

// POST /api/v1/cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session := cart.FromContext(ctx)
	links, err := session.Checkout(ctx)
	if errors.Is(err, checkout.ErrNoPhoneNumber) {
		respondError(w, http.StatusServiceUnavailable, "checkout_unconfigured", "no destination phone number configured")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to build checkout link")
		return
	}

	respondJSON(w, http.StatusOK, links)
}
