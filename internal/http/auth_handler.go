package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/wisnubjoey/crafthaven/internal/api"
	"github.com/wisnubjoey/crafthaven/internal/notify"
)

// AuthClient is the backend auth surface. The token it returns is copied
// into a cookie as-is; no validation happens on this side.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*api.User, error)
}

type AuthHandler struct {
	client   AuthClient
	notifier notify.Notifier
	timeout  time.Duration
}

func NewAuthHandler(client AuthClient, notifier notify.Notifier, timeout time.Duration) *AuthHandler {
	return &AuthHandler{client: client, notifier: notifier, timeout: timeout}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	resp, err := h.client.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.notifier.Notify(ctx, notify.LevelError, "Login gagal")

		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "wrong email or password")
			return
		}
		respondError(w, http.StatusBadGateway, "backend_unavailable", "login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     api.TokenKey,
		Value:    resp.Token,
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, resp)
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	// drop the cookie regardless of how the backend call goes
	http.SetCookie(w, &http.Cookie{
		Name:     api.TokenKey,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if err := h.client.Logout(ctx); err != nil {
		h.notifier.Notify(ctx, notify.LevelError, "Logout gagal di server")
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.client.Me(ctx)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			respondError(w, http.StatusUnauthorized, "unauthorized", "not logged in")
			return
		}
		respondError(w, http.StatusBadGateway, "backend_unavailable", "failed to load profile")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
