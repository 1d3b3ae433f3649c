package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// FCMSender pushes notifications to the customer's registered device.
type FCMSender struct {
	client *messaging.Client
	log    *zap.Logger
}

func NewFCMSender(ctx context.Context, credentialsFile string, log *zap.Logger) (*FCMSender, error) {
	opt := option.WithCredentialsFile(credentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("get messaging client: %w", err)
	}

	return &FCMSender{
		client: client,
		log:    log.With(zap.String("sender", "fcm")),
	}, nil
}

func (s *FCMSender) Send(ctx context.Context, msg Message) error {
	if msg.DeviceToken == "" {
		return fmt.Errorf("customer %s: %w", msg.CustomerID, ErrNoRecipient)
	}

	title, body, err := Render(msg)
	if err != nil {
		return err
	}

	data := make(map[string]string, len(msg.Data)+1)
	for k, v := range msg.Data {
		data[k] = v
	}
	data["kind"] = string(msg.Kind)

	id, err := s.client.Send(ctx, &messaging.Message{
		Token: msg.DeviceToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send fcm message to customer %s: %w", msg.CustomerID, err)
	}

	s.log.Debug("Push notification sent",
		zap.String("message_id", id),
		zap.String("kind", string(msg.Kind)),
		zap.String("customer_id", msg.CustomerID),
	)
	return nil
}
