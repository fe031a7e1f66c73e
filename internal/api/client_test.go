package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisnubjoey/crafthaven/internal/domain"
	"github.com/wisnubjoey/crafthaven/internal/storage"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *StoredTokens) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := NewStoredTokens(storage.NewMemory())
	return New(srv.URL, tokens, nil), tokens
}

func TestLoginStoresToken(t *testing.T) {
	ctx := context.Background()
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@crafthaven.id", req.Email)

		json.NewEncoder(w).Encode(LoginResponse{
			Token: "tok-123",
			User:  User{ID: 1, Name: "Admin", Email: req.Email},
		})
	}))

	resp, err := client.Login(ctx, "admin@crafthaven.id", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.Token)

	stored, err := tokens.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", stored)
}

func TestBearerTokenAttached(t *testing.T) {
	ctx := context.Background()

	var gotAuth string
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(User{ID: 1})
	}))

	// no token anywhere: header absent
	_, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	// fallback store token
	require.NoError(t, tokens.SetToken(ctx, "stored-tok"))
	_, err = client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer stored-tok", gotAuth)

	// request-scoped token wins over the stored one
	_, err = client.Me(ContextWithToken(ctx, "cookie-tok"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer cookie-tok", gotAuth)
}

func TestLogoutClearsTokenEvenOnFailure(t *testing.T) {
	ctx := context.Background()
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	require.NoError(t, tokens.SetToken(ctx, "tok"))

	err := client.Logout(ctx)
	require.Error(t, err)

	stored, err := tokens.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestBackendErrorSurfacesStatus(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))

	_, err := client.GetProduct(ctx, 42)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "not found")
}

func TestProductCRUDPaths(t *testing.T) {
	ctx := context.Background()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /products":
			json.NewEncoder(w).Encode([]domain.Product{{ID: 1, Name: "Gelang"}})
		case "GET /products/1":
			json.NewEncoder(w).Encode(domain.Product{ID: 1, Name: "Gelang"})
		case "POST /products":
			var req domain.CreateProductRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			json.NewEncoder(w).Encode(domain.Product{ID: 2, Name: req.Name})
		case "PUT /products/2":
			json.NewEncoder(w).Encode(domain.Product{ID: 2, Name: "Updated"})
		case "DELETE /products/2":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))

	list, err := client.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := client.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Gelang", got.Name)

	created, err := client.CreateProduct(ctx, domain.CreateProductRequest{Name: "Kalung"})
	require.NoError(t, err)
	assert.Equal(t, "Kalung", created.Name)

	updated, err := client.UpdateProduct(ctx, 2, domain.CreateProductRequest{Name: "Updated"})
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.Name)

	require.NoError(t, client.DeleteProduct(ctx, 2))
}
