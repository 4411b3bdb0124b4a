// Package http serves the checkout engine over JSON.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter mounts the handler's routes behind the request middleware chain.
func NewRouter(h *Handler, requestTimeout time.Duration, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/shipping-methods", h.ListShippingMethods)

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/prepare", h.PrepareCheckout)
			r.Post("/confirm", h.ConfirmCheckout)
		})

		r.Get("/customers/{customer_id}/orders", h.ListOrders)

		r.Route("/orders/{order_id}", func(r chi.Router) {
			r.Get("/", h.GetOrder)
			r.Post("/cancel", h.CancelOrder)
			r.Post("/deliver", h.MarkDelivered)
		})
	})

	return r
}
