package payment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogGateway records refunds without calling a provider. It is wired when no
// Stripe key is configured so refunds still settle in development.
type LogGateway struct {
	log *zap.Logger
}

func NewLogGateway(log *zap.Logger) *LogGateway {
	return &LogGateway{log: log.With(zap.String("gateway", "log"))}
}

func (g *LogGateway) Refund(_ context.Context, req RefundRequest) (*RefundResult, error) {
	id := "manual_" + uuid.NewString()
	g.log.Warn("Refund recorded without payment provider",
		zap.String("booking_id", req.BookingID),
		zap.Float64("amount", req.Amount),
		zap.String("refund_id", id),
	)
	return &RefundResult{RefundID: id, Status: "pending"}, nil
}
