package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wisnubjoey/crafthaven/internal/cart"
	"github.com/wisnubjoey/crafthaven/internal/notify"
)

// Backend bundles the slices of the API client the handlers need.
type Backend interface {
	ProductClient
	AuthClient
}

// NewRouter assembles the full HTTP surface: cart, product proxy, auth,
// and the dashboard route guard.
func NewRouter(session *cart.Session, backend Backend, notifier notify.Notifier, timeout time.Duration) *chi.Mux {
	cartHandler := NewCartHandler(backend, notifier, timeout)
	productHandler := NewProductHandler(backend, notifier, timeout)
	authHandler := NewAuthHandler(backend, notifier, timeout)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))
	r.Use(CookieTokenMiddleware)
	r.Use(SessionMiddleware(session))
	r.Use(RouteGuard)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{itemID}", cartHandler.UpdateQuantity)
			r.Delete("/items/{itemID}", cartHandler.RemoveItem)
			r.Post("/checkout", cartHandler.Checkout)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)

			// dashboard-only mutations
			r.Group(func(r chi.Router) {
				r.Use(RequireAuth)
				r.Post("/", productHandler.Create)
				r.Put("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})
	})

	return r
}
