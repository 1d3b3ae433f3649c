package wire

import (
	"mobile-booking/internal/adaptor"
	"mobile-booking/internal/data/entity"
	"mobile-booking/pkg/middleware"
	"mobile-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var businessRoles = []string{string(entity.RoleAdmin), string(entity.RoleStaff)}

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Customers see only their own bookings; business roles see all of them.
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/", bookingHandler.GetMyBookings)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Get("/{id}/history", bookingHandler.GetHistory)
		r.Put("/{id}/reschedule", bookingHandler.RescheduleBooking)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})

	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(log, businessRoles...))

		r.Put("/{id}/status", bookingHandler.TransitionStatus)
		r.Put("/{id}/payment", bookingHandler.RecordPayment)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
