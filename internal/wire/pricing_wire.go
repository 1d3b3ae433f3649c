package wire

import (
	"mobile-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePricing(r chi.Router, pricingHandler *adaptor.PricingHandler) {
	// GET /api/services (public)
	r.Get("/api/services", pricingHandler.ListServices)

	// POST /api/pricing/quote (public)
	r.Post("/api/pricing/quote", pricingHandler.Quote)
}
