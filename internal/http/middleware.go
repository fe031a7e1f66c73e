package http

import (
	"net/http"
	"strings"

	"github.com/wisnubjoey/crafthaven/internal/api"
	"github.com/wisnubjoey/crafthaven/internal/cart"
)

// SessionMiddleware installs the single live cart session into every
// request context. Handlers fetch it with cart.FromContext.
func SessionMiddleware(session *cart.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(cart.NewContext(r.Context(), session)))
		})
	}
}

// CookieTokenMiddleware lifts the auth cookie into the request context so
// outgoing backend calls carry it as a bearer header.
func CookieTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(api.TokenKey); err == nil && cookie.Value != "" {
			r = r.WithContext(api.ContextWithToken(r.Context(), cookie.Value))
		}
		next.ServeHTTP(w, r)
	})
}

// RouteGuard is the dashboard/login gate: dashboard paths without an auth
// cookie bounce to the login page, and the login page with a cookie
// bounces to the dashboard. Allow/deny only, no token validation.
func RouteGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(api.TokenKey)
		hasToken := err == nil && cookie.Value != ""

		switch {
		case strings.HasPrefix(r.URL.Path, "/dashboard") && !hasToken:
			http.Redirect(w, r, "/login", http.StatusFound)
		case r.URL.Path == "/login" && hasToken:
			http.Redirect(w, r, "/dashboard", http.StatusFound)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// RequireAuth rejects API requests that carry no token at all. The backend
// still does the real validation; this only spares it the obviously
// unauthenticated calls.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.TokenFromContext(r.Context()) == "" {
			respondError(w, http.StatusUnauthorized, "unauthorized", "missing auth token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
