package tasks

import (
	"encoding/json"
	"fmt"

	"mobile-booking/pkg/notify"
	"mobile-booking/pkg/payment"

	"github.com/hibiken/asynq"
)

const (
	TypeNotificationSend = "notification:send"
	TypeRefundInitiate   = "refund:initiate"

	QueueNotifications = "notifications"
	QueuePayments      = "payments"
)

func NewNotificationTask(msg notify.Message) (*asynq.Task, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal notification payload: %w", err)
	}
	return asynq.NewTask(TypeNotificationSend, b), nil
}

func NewRefundTask(req payment.RefundRequest) (*asynq.Task, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal refund payload: %w", err)
	}
	return asynq.NewTask(TypeRefundInitiate, b), nil
}
