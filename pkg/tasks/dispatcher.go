package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mobile-booking/pkg/notify"
	"mobile-booking/pkg/payment"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqDispatcher hands side effects to the queue so the caller never waits on delivery.
type AsynqDispatcher struct {
	client   enqueuer
	maxRetry int
	log      *zap.Logger
}

func NewAsynqDispatcher(client *asynq.Client, maxRetry int, log *zap.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{
		client:   client,
		maxRetry: maxRetry,
		log:      log.With(zap.String("dispatcher", "asynq")),
	}
}

func (d *AsynqDispatcher) Notify(ctx context.Context, msg notify.Message) error {
	task, err := NewNotificationTask(msg)
	if err != nil {
		return err
	}

	info, err := d.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueNotifications),
		asynq.MaxRetry(d.maxRetry),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s notification: %w", msg.Kind, err)
	}

	d.log.Debug("Notification enqueued",
		zap.String("task_id", info.ID),
		zap.String("kind", string(msg.Kind)),
		zap.String("customer_id", msg.CustomerID),
	)
	return nil
}

func (d *AsynqDispatcher) Refund(ctx context.Context, req payment.RefundRequest) error {
	task, err := NewRefundTask(req)
	if err != nil {
		return err
	}

	// The task ID doubles as a dedup key so a booking is refunded once.
	info, err := d.client.EnqueueContext(ctx, task,
		asynq.Queue(QueuePayments),
		asynq.MaxRetry(d.maxRetry),
		asynq.TaskID("refund-"+req.BookingID),
	)
	if err != nil {
		return fmt.Errorf("enqueue refund for booking %s: %w", req.BookingID, err)
	}

	d.log.Info("Refund enqueued",
		zap.String("task_id", info.ID),
		zap.String("booking_id", req.BookingID),
		zap.Float64("amount", req.Amount),
	)
	return nil
}

// InlineDispatcher runs the handlers in a background goroutine when no queue
// is configured. Failed attempts are retried with doubling backoff, the way
// the queue would, until maxRetry is spent or the error is permanent.
type InlineDispatcher struct {
	handlers *Handlers
	maxRetry int
	backoff  time.Duration
	log      *zap.Logger
}

func NewInlineDispatcher(handlers *Handlers, maxRetry int, backoff time.Duration, log *zap.Logger) *InlineDispatcher {
	if maxRetry < 0 {
		maxRetry = 0
	}
	if backoff <= 0 {
		backoff = time.Second
	}
	return &InlineDispatcher{
		handlers: handlers,
		maxRetry: maxRetry,
		backoff:  backoff,
		log:      log.With(zap.String("dispatcher", "inline")),
	}
}

func (d *InlineDispatcher) Notify(ctx context.Context, msg notify.Message) error {
	go func() {
		err := d.withRetry(context.WithoutCancel(ctx), func(ctx context.Context) error {
			return d.handlers.sendNotification(ctx, msg)
		})
		if err != nil {
			d.log.Warn("Notification delivery failed",
				zap.Error(err),
				zap.String("kind", string(msg.Kind)),
				zap.String("customer_id", msg.CustomerID),
			)
		}
	}()
	return nil
}

func (d *InlineDispatcher) Refund(ctx context.Context, req payment.RefundRequest) error {
	go func() {
		err := d.withRetry(context.WithoutCancel(ctx), func(ctx context.Context) error {
			return d.handlers.initiateRefund(ctx, req)
		})
		if err != nil {
			d.log.Error("Refund initiation failed",
				zap.Error(err),
				zap.String("booking_id", req.BookingID),
			)
		}
	}()
	return nil
}

func (d *InlineDispatcher) withRetry(ctx context.Context, fn func(context.Context) error) error {
	delay := d.backoff
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil || errors.Is(err, asynq.SkipRetry) || attempt >= d.maxRetry {
			return err
		}

		d.log.Debug("Retrying task", zap.Error(err), zap.Int("attempt", attempt+1), zap.Duration("delay", delay))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
