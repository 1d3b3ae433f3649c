package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

type StripeGateway struct {
	sc  *client.API
	log *zap.Logger
}

func NewStripeGateway(secretKey string, log *zap.Logger) *StripeGateway {
	return &StripeGateway{
		sc:  client.New(secretKey, nil),
		log: log.With(zap.String("gateway", "stripe")),
	}
}

func (g *StripeGateway) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	if req.PaymentIntentID == "" {
		return nil, fmt.Errorf("refund booking %s: %w", req.BookingID, ErrNoPaymentReference)
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(req.PaymentIntentID),
		Amount:        stripe.Int64(ToMinorUnits(req.Amount)),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx
	// One refund per booking, even when the task is retried.
	params.SetIdempotencyKey("refund-" + req.BookingID)
	params.AddMetadata("booking_id", req.BookingID)
	params.AddMetadata("reference", req.Reference)

	refund, err := g.sc.Refunds.New(params)
	if err != nil {
		g.log.Error("Stripe refund failed",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
			zap.String("payment_intent", req.PaymentIntentID),
		)
		return nil, fmt.Errorf("create stripe refund for booking %s: %w", req.BookingID, err)
	}

	g.log.Info("Stripe refund created",
		zap.String("booking_id", req.BookingID),
		zap.String("refund_id", refund.ID),
		zap.String("status", string(refund.Status)),
	)
	return &RefundResult{RefundID: refund.ID, Status: string(refund.Status)}, nil
}
