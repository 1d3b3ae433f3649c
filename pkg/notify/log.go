package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes the rendered notification to the log. It is used when no
// push channel is configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log.With(zap.String("sender", "log"))}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	title, body, err := Render(msg)
	if err != nil {
		return err
	}

	s.log.Info("Notification",
		zap.String("kind", string(msg.Kind)),
		zap.String("customer_id", msg.CustomerID),
		zap.String("email", msg.Email),
		zap.String("title", title),
		zap.String("body", body),
	)
	return nil
}
