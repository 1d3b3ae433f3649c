package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mobile-booking/pkg/notify"
	"mobile-booking/pkg/payment"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RefundRecorder is told when a refund has been accepted by the provider.
type RefundRecorder interface {
	MarkRefunded(ctx context.Context, bookingID, refundID string) error
}

// Handlers performs the work behind each task type.
type Handlers struct {
	sender   notify.Sender
	gateway  payment.Gateway
	recorder RefundRecorder
	log      *zap.Logger
}

func NewHandlers(sender notify.Sender, gateway payment.Gateway, recorder RefundRecorder, log *zap.Logger) *Handlers {
	return &Handlers{
		sender:   sender,
		gateway:  gateway,
		recorder: recorder,
		log:      log.With(zap.String("component", "task_handlers")),
	}
}

// SetRecorder is used when the recorder is built after the handlers.
func (h *Handlers) SetRecorder(recorder RefundRecorder) {
	h.recorder = recorder
}

func (h *Handlers) HandleNotification(ctx context.Context, task *asynq.Task) error {
	var msg notify.Message
	if err := json.Unmarshal(task.Payload(), &msg); err != nil {
		return fmt.Errorf("invalid notification payload: %v: %w", err, asynq.SkipRetry)
	}
	return h.sendNotification(ctx, msg)
}

func (h *Handlers) HandleRefund(ctx context.Context, task *asynq.Task) error {
	var req payment.RefundRequest
	if err := json.Unmarshal(task.Payload(), &req); err != nil {
		return fmt.Errorf("invalid refund payload: %v: %w", err, asynq.SkipRetry)
	}
	return h.initiateRefund(ctx, req)
}

func (h *Handlers) sendNotification(ctx context.Context, msg notify.Message) error {
	err := h.sender.Send(ctx, msg)
	if errors.Is(err, notify.ErrNoRecipient) {
		h.log.Info("Notification skipped, customer has no device",
			zap.String("kind", string(msg.Kind)),
			zap.String("customer_id", msg.CustomerID),
		)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return err
}

func (h *Handlers) initiateRefund(ctx context.Context, req payment.RefundRequest) error {
	result, err := h.gateway.Refund(ctx, req)
	if errors.Is(err, payment.ErrNoPaymentReference) {
		h.log.Error("Refund needs manual handling",
			zap.String("booking_id", req.BookingID),
			zap.Float64("amount", req.Amount),
		)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if err != nil {
		return err
	}

	if h.recorder == nil {
		return nil
	}
	if err := h.recorder.MarkRefunded(ctx, req.BookingID, result.RefundID); err != nil {
		// The provider call is idempotent per booking, so a retry is safe.
		return fmt.Errorf("record refund for booking %s: %w", req.BookingID, err)
	}
	return nil
}

// Worker consumes the task queues in-process.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log *zap.Logger
}

func NewWorker(redisOpt asynq.RedisClientOpt, concurrency int, handlers *Handlers, log *zap.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			QueuePayments:      6,
			QueueNotifications: 3,
		},
		Logger: newAsynqLogger(log),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotificationSend, handlers.HandleNotification)
	mux.HandleFunc(TypeRefundInitiate, handlers.HandleRefund)

	return &Worker{
		srv: srv,
		mux: mux,
		log: log.With(zap.String("component", "worker")),
	}
}

// Start begins processing in the background.
func (w *Worker) Start() error {
	w.log.Info("Starting task worker")
	return w.srv.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
	w.log.Info("Task worker stopped")
}

type asynqLogger struct {
	s *zap.SugaredLogger
}

func newAsynqLogger(log *zap.Logger) asynqLogger {
	return asynqLogger{s: log.With(zap.String("component", "asynq")).Sugar()}
}

func (l asynqLogger) Debug(args ...interface{}) { l.s.Debug(args...) }
func (l asynqLogger) Info(args ...interface{})  { l.s.Info(args...) }
func (l asynqLogger) Warn(args ...interface{})  { l.s.Warn(args...) }
func (l asynqLogger) Error(args ...interface{}) { l.s.Error(args...) }
func (l asynqLogger) Fatal(args ...interface{}) { l.s.Fatal(args...) }
