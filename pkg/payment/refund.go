package payment

import (
	"context"
	"errors"
	"math"
)

type RefundRequest struct {
	BookingID       string  `json:"booking_id"`
	Reference       string  `json:"reference"`
	PaymentIntentID string  `json:"payment_intent_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

type RefundResult struct {
	RefundID string
	Status   string
}

// ErrNoPaymentReference means there is nothing to refund against.
var ErrNoPaymentReference = errors.New("booking has no payment reference")

type Gateway interface {
	Refund(ctx context.Context, req RefundRequest) (*RefundResult, error)
}

// ToMinorUnits converts a 2-decimal amount into cents.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
