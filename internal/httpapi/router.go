package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
)

// NewRouter собирает маршруты API витрины.
func NewRouter(h *Handler, authenticator auth.Authenticator) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Route("/orders", func(r chi.Router) {
		r.Use(RequireAuth(authenticator))
		r.Get("/", h.ListOrders)
		r.Post("/", h.CreateOrder)
	})

	return r
}
