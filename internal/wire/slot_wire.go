package wire

import (
	"mobile-booking/internal/adaptor"
	"mobile-booking/pkg/middleware"
	"mobile-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSlot(
	r chi.Router,
	slotHandler *adaptor.SlotHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// GET /api/slots?date=2026-03-10 (public)
	r.Get("/api/slots", slotHandler.ListAvailable)

	r.With(
		middleware.Auth(config.JWT, log),
		middleware.RequireRole(log, businessRoles...),
	).Post("/api/admin/slots", slotHandler.CreateSlot)
}
