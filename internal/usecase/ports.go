package usecase

import (
	"context"
	"time"

	"mobile-booking/pkg/geocode"
	"mobile-booking/pkg/notify"
	"mobile-booking/pkg/payment"
)

// Geocoder resolves a postal code to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, postalCode string) (geocode.Point, error)
}

// Dispatcher hands notifications and refunds to the background queue.
type Dispatcher interface {
	Notify(ctx context.Context, msg notify.Message) error
	Refund(ctx context.Context, req payment.RefundRequest) error
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Deps are the collaborators outside the store. Nil entries fall back to
// no-ops so the core keeps working without them.
type Deps struct {
	Geocoder   Geocoder
	Dispatcher Dispatcher
	Events     EventPublisher
	Clock      func() time.Time
	Location   *time.Location
}

func (d Deps) withDefaults() Deps {
	if d.Dispatcher == nil {
		d.Dispatcher = nopDispatcher{}
	}
	if d.Events == nil {
		d.Events = nopPublisher{}
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	return d
}

type nopDispatcher struct{}

func (nopDispatcher) Notify(context.Context, notify.Message) error        { return nil }
func (nopDispatcher) Refund(context.Context, payment.RefundRequest) error { return nil }

type nopPublisher struct{}

func (nopPublisher) PublishJSON(context.Context, string, any) error { return nil }
