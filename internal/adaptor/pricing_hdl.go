package adaptor

import (
	"net/http"

	"mobile-booking/internal/dto/request"
	"mobile-booking/internal/usecase"
	"mobile-booking/pkg/utils"

	"go.uber.org/zap"
)

type PricingHandler struct {
	service usecase.PricingService
	catalog usecase.CatalogService
	log     *zap.Logger
}

func NewPricingHandler(service usecase.PricingService, catalog usecase.CatalogService, log *zap.Logger) *PricingHandler {
	return &PricingHandler{
		service: service,
		catalog: catalog,
		log:     log.With(zap.String("handler", "pricing")),
	}
}

// ListServices handles GET /api/services
func (h *PricingHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.ListServices(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// Quote handles POST /api/pricing/quote
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.PriceQuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "quote price")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}
