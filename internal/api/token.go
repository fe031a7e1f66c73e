package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/wisnubjoey/crafthaven/internal/storage"
)

// TokenKey is where the bearer token lives in both the cookie and the
// fallback store.
const TokenKey = "auth_token"

// TokenSource supplies the bearer token attached to backend requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

type tokenCtxKey struct{}

// ContextWithToken pins a request-scoped token, taking precedence over the
// fallback source. This is how the cookie from an incoming request reaches
// outgoing backend calls.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

// TokenFromContext returns the request-scoped token, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenCtxKey{}).(string)
	return token
}

// StoredTokens is the fallback token source, persisting the token in the
// same blob store the cart uses.
type StoredTokens struct {
	store storage.Store
}

func NewStoredTokens(store storage.Store) *StoredTokens {
	return &StoredTokens{store: store}
}

func (s *StoredTokens) Token(ctx context.Context) (string, error) {
	if s.store == nil {
		return "", nil
	}
	data, err := s.store.Get(ctx, TokenKey)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return string(data), nil
}

func (s *StoredTokens) SetToken(ctx context.Context, token string) error {
	if s.store == nil {
		return nil
	}
	return s.store.Set(ctx, TokenKey, []byte(token))
}

func (s *StoredTokens) ClearToken(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Delete(ctx, TokenKey)
}

// bearerTransport attaches "Authorization: Bearer <token>" to every
// request, preferring the request-scoped token over the fallback source.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := TokenFromContext(req.Context())
	if token == "" && t.tokens != nil {
		stored, err := t.tokens.Token(req.Context())
		if err == nil {
			token = stored
		}
	}
	if token != "" {
		// clone before mutating, RoundTrippers must not modify the request
		clone := req.Clone(req.Context())
		clone.Header.Set("Authorization", "Bearer "+token)
		req = clone
	}
	return t.base.RoundTrip(req)
}
