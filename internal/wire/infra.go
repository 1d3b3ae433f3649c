package wire

import (
	"context"
	"fmt"
	"time"

	"mobile-booking/internal/usecase"
	"mobile-booking/pkg/geocode"
	"mobile-booking/pkg/mq"
	"mobile-booking/pkg/notify"
	"mobile-booking/pkg/payment"
	"mobile-booking/pkg/tasks"
	"mobile-booking/pkg/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type infra struct {
	deps     usecase.Deps
	handlers *tasks.Handlers
	redisOpt asynq.RedisClientOpt
}

// buildInfra picks a real client for every collaborator that is configured
// and a logging stand-in for the rest.
func buildInfra(ctx context.Context, config *utils.Config, logger *zap.Logger, app *App) (*infra, error) {
	out := &infra{
		redisOpt: asynq.RedisClientOpt{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		},
	}

	sender, err := buildSender(ctx, config.Notification, logger)
	if err != nil {
		return nil, err
	}
	var gateway payment.Gateway = payment.NewLogGateway(logger)
	if config.Stripe.SecretKey != "" {
		gateway = payment.NewStripeGateway(config.Stripe.SecretKey, logger)
	}
	out.handlers = tasks.NewHandlers(sender, gateway, nil, logger)

	var dispatcher usecase.Dispatcher
	if config.Queue.Enabled {
		client := asynq.NewClient(out.redisOpt)
		app.closers = append(app.closers, func() { client.Close() })
		dispatcher = tasks.NewAsynqDispatcher(client, config.Queue.MaxRetry, logger)
	} else {
		dispatcher = tasks.NewInlineDispatcher(out.handlers, config.Queue.MaxRetry, config.Queue.RetryBackoff, logger)
	}

	var events usecase.EventPublisher = mq.NewLogPublisher(logger)
	if config.MQ.Enabled {
		publisher, err := mq.NewPublisher(config.MQ.URL, config.MQ.Exchange)
		if err != nil {
			return nil, fmt.Errorf("connect event broker: %w", err)
		}
		app.closers = append(app.closers, func() { publisher.Close() })
		events = publisher
	}

	out.deps = usecase.Deps{
		Geocoder:   buildGeocoder(config, logger, app),
		Dispatcher: dispatcher,
		Events:     events,
		Clock:      time.Now,
		Location:   config.App.Location(),
	}
	return out, nil
}

func buildSender(ctx context.Context, config utils.NotificationConfig, logger *zap.Logger) (notify.Sender, error) {
	if !config.FCMEnabled {
		return notify.NewLogSender(logger), nil
	}
	sender, err := notify.NewFCMSender(ctx, config.FCMCredentialsFile, logger)
	if err != nil {
		return nil, fmt.Errorf("init fcm: %w", err)
	}
	return sender, nil
}

// buildGeocoder returns nil without an API key; every quote then carries the
// conservative surcharge.
func buildGeocoder(config *utils.Config, logger *zap.Logger, app *App) usecase.Geocoder {
	if config.Geocode.APIKey == "" {
		logger.Warn("GEOCODE_API_KEY not set, distance surcharges will use the fallback amount")
		return nil
	}

	google := geocode.NewGoogleClient(geocode.GoogleOptions{
		BaseURL:       config.Geocode.BaseURL,
		APIKey:        config.Geocode.APIKey,
		Region:        config.Geocode.Region,
		Timeout:       config.Geocode.Timeout,
		RatePerSecond: config.Geocode.RatePerSecond,
		Burst:         config.Geocode.Burst,
	}, logger)

	if config.Redis.Addr == "" {
		return google
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	app.closers = append(app.closers, func() { rdb.Close() })
	return geocode.NewCachedGeocoder(google, rdb, config.Geocode.CacheTTL, logger)
}
