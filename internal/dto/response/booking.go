package response

import (
	"time"

	"mobile-booking/internal/data/entity"
)

type VehicleSnapshot struct {
	Make         string             `json:"make"`
	Model        string             `json:"model"`
	Year         int                `json:"year"`
	Size         entity.VehicleSize `json:"size"`
	LicensePlate string             `json:"license_plate"`
}

type AddressSnapshot struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

type ServiceSnapshot struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

type PriceSummary struct {
	BasePrice         float64 `json:"base_price"`
	SizeMultiplier    float64 `json:"size_multiplier"`
	DistanceSurcharge float64 `json:"distance_surcharge"`
	TotalPrice        float64 `json:"total_price"`
	CancellationFee   float64 `json:"cancellation_fee,omitempty"`
	RefundAmount      float64 `json:"refund_amount,omitempty"`
}

type BookingResponse struct {
	ID                  string               `json:"id"`
	Reference           string               `json:"reference"`
	CustomerID          string               `json:"customer_id"`
	SlotID              *string              `json:"slot_id"`
	Status              entity.BookingStatus `json:"status"`
	PaymentStatus       entity.PaymentStatus `json:"payment_status"`
	ScheduledDate       string               `json:"scheduled_date"`
	ScheduledStart      time.Time            `json:"scheduled_start"`
	ScheduledEnd        time.Time            `json:"scheduled_end"`
	Service             ServiceSnapshot      `json:"service"`
	Vehicle             VehicleSnapshot      `json:"vehicle"`
	Address             AddressSnapshot      `json:"address"`
	Price               PriceSummary         `json:"price"`
	SpecialInstructions *string              `json:"special_instructions,omitempty"`
	CancellationReason  *string              `json:"cancellation_reason,omitempty"`
	CancelledAt         *time.Time           `json:"cancelled_at,omitempty"`
	Warning             string               `json:"warning,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

type StatusHistoryResponse struct {
	ID         string                `json:"id"`
	FromStatus *entity.BookingStatus `json:"from_status"`
	ToStatus   entity.BookingStatus  `json:"to_status"`
	ActorID    *string               `json:"actor_id"`
	Reason     *string               `json:"reason,omitempty"`
	Notes      *string               `json:"notes,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

func BookingToResponse(b *entity.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:             b.ID.String(),
		Reference:      b.Reference,
		CustomerID:     b.CustomerID.String(),
		Status:         b.Status,
		PaymentStatus:  b.PaymentStatus,
		ScheduledDate:  b.ScheduledDate.Format("2006-01-02"),
		ScheduledStart: b.ScheduledStart,
		ScheduledEnd:   b.ScheduledEnd,
		Service: ServiceSnapshot{
			ID:              b.ServiceID.String(),
			Name:            b.ServiceName,
			DurationMinutes: b.ServiceDurationMinutes,
		},
		Vehicle: VehicleSnapshot{
			Make:         b.VehicleMake,
			Model:        b.VehicleModel,
			Year:         b.VehicleYear,
			Size:         b.VehicleSize,
			LicensePlate: b.VehicleLicensePlate,
		},
		Address: AddressSnapshot{
			Street:     b.AddressStreet,
			City:       b.AddressCity,
			State:      b.AddressState,
			PostalCode: b.AddressPostalCode,
		},
		Price: PriceSummary{
			BasePrice:         b.BasePrice,
			SizeMultiplier:    b.SizeMultiplier,
			DistanceSurcharge: b.DistanceSurcharge,
			TotalPrice:        b.TotalPrice,
			CancellationFee:   b.CancellationFee,
			RefundAmount:      b.RefundAmount,
		},
		SpecialInstructions: b.SpecialInstructions,
		CancellationReason:  b.CancellationReason,
		CancelledAt:         b.CancelledAt,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
	if b.SlotID != nil {
		id := b.SlotID.String()
		resp.SlotID = &id
	}
	return resp
}

func StatusHistoryToResponse(e *entity.StatusHistoryEntry) StatusHistoryResponse {
	resp := StatusHistoryResponse{
		ID:         e.ID.String(),
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		Reason:     e.Reason,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
	}
	if e.ActorID != nil {
		id := e.ActorID.String()
		resp.ActorID = &id
	}
	return resp
}
