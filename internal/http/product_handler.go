package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wisnubjoey/crafthaven/internal/api"
	"github.com/wisnubjoey/crafthaven/internal/domain"
	"github.com/wisnubjoey/crafthaven/internal/notify"
)

// ProductClient is the backend catalog surface the storefront and
// dashboard proxy through.
type ProductClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, req domain.CreateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type ProductHandler struct {
	client   ProductClient
	notifier notify.Notifier
	timeout  time.Duration
}

func NewProductHandler(client ProductClient, notifier notify.Notifier, timeout time.Duration) *ProductHandler {
	return &ProductHandler{client: client, notifier: notifier, timeout: timeout}
}

// GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.client.ListProducts(ctx)
	if err != nil {
		h.respondBackendError(ctx, w, err, "Gagal memuat daftar produk")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid product id")
		return
	}

	product, err := h.client.GetProduct(ctx, id)
	if err != nil {
		h.respondBackendError(ctx, w, err, "Gagal memuat produk")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// POST /api/v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req domain.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.client.CreateProduct(ctx, req)
	if err != nil {
		h.respondBackendError(ctx, w, err, "Gagal menyimpan produk")
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// PUT /api/v1/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid product id")
		return
	}

	var req domain.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.client.UpdateProduct(ctx, id, req)
	if err != nil {
		h.respondBackendError(ctx, w, err, "Gagal memperbarui produk")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// DELETE /api/v1/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid product id")
		return
	}

	if err := h.client.DeleteProduct(ctx, id); err != nil {
		h.respondBackendError(ctx, w, err, "Gagal menghapus produk")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// respondBackendError mirrors the backend status when it answered, and
// reports a plain gateway failure when it did not. Either way the user
// gets a transient notification, never a retry.
func (h *ProductHandler) respondBackendError(ctx context.Context, w http.ResponseWriter, err error, userMessage string) {
	h.notifier.Notify(ctx, notify.LevelError, userMessage)

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		respondError(w, apiErr.StatusCode, "backend_error", userMessage)
		return
	}
	respondError(w, http.StatusBadGateway, "backend_unavailable", userMessage)
}
