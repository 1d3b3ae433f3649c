package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending             BookingStatus = "pending"
	BookingStatusProcessing          BookingStatus = "processing"
	BookingStatusPaymentFailed       BookingStatus = "payment_failed"
	BookingStatusConfirmed           BookingStatus = "confirmed"
	BookingStatusRescheduled         BookingStatus = "rescheduled"
	BookingStatusInProgress          BookingStatus = "in_progress"
	BookingStatusCompleted           BookingStatus = "completed"
	BookingStatusDeclined            BookingStatus = "declined"
	BookingStatusCancelledByCustomer BookingStatus = "cancelled_by_customer"
	BookingStatusCancelledByAdmin    BookingStatus = "cancelled_by_admin"
	BookingStatusNoShow              BookingStatus = "no_show"
	BookingStatusExpired             BookingStatus = "expired"
)

var AllBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusProcessing,
	BookingStatusPaymentFailed,
	BookingStatusConfirmed,
	BookingStatusRescheduled,
	BookingStatusInProgress,
	BookingStatusCompleted,
	BookingStatusDeclined,
	BookingStatusCancelledByCustomer,
	BookingStatusCancelledByAdmin,
	BookingStatusNoShow,
	BookingStatusExpired,
}

func (s BookingStatus) IsValid() bool {
	for _, status := range AllBookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusDeclined, BookingStatusCancelledByCustomer,
		BookingStatusCancelledByAdmin, BookingStatusNoShow, BookingStatusExpired:
		return true
	}
	return false
}

func (s BookingStatus) IsCancellation() bool {
	return s == BookingStatusCancelledByCustomer || s == BookingStatusCancelledByAdmin
}

type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusRefundPending PaymentStatus = "refund_pending"
	PaymentStatusRefunded      PaymentStatus = "refunded"
	PaymentStatusFailed        PaymentStatus = "failed"
)

// BookingSnapshot is copied from the customer's profile records when the
// booking is created and never re-read from them afterwards.
type BookingSnapshot struct {
	ServiceName            string      `db:"service_name"`
	ServiceDurationMinutes int         `db:"service_duration_minutes"`
	VehicleMake            string      `db:"vehicle_make"`
	VehicleModel           string      `db:"vehicle_model"`
	VehicleYear            int         `db:"vehicle_year"`
	VehicleSize            VehicleSize `db:"vehicle_size"`
	VehicleLicensePlate    string      `db:"vehicle_license_plate"`
	AddressStreet          string      `db:"address_street"`
	AddressCity            string      `db:"address_city"`
	AddressState           string      `db:"address_state"`
	AddressPostalCode      string      `db:"address_postal_code"`
}

type Booking struct {
	Base
	Reference           string        `db:"reference"`
	CustomerID          uuid.UUID     `db:"customer_id"`
	ServiceID           uuid.UUID     `db:"service_id"`
	VehicleID           uuid.UUID     `db:"vehicle_id"`
	AddressID           uuid.UUID     `db:"address_id"`
	SlotID              *uuid.UUID    `db:"slot_id"`
	BasePrice           float64       `db:"base_price"`
	SizeMultiplier      float64       `db:"size_multiplier"`
	DistanceSurcharge   float64       `db:"distance_surcharge"`
	TotalPrice          float64       `db:"total_price"`
	Status              BookingStatus `db:"status"`
	SpecialInstructions *string       `db:"special_instructions"`
	ScheduledDate       time.Time     `db:"scheduled_date"`
	ScheduledStart      time.Time     `db:"scheduled_start"`
	ScheduledEnd        time.Time     `db:"scheduled_end"`
	PaymentStatus       PaymentStatus `db:"payment_status"`
	PaymentReference    *string       `db:"payment_reference"`
	CancellationFee     float64       `db:"cancellation_fee"`
	RefundAmount        float64       `db:"refund_amount"`
	CancellationReason  *string       `db:"cancellation_reason"`
	CancelledAt         *time.Time    `db:"cancelled_at"`
	BookingSnapshot
}
