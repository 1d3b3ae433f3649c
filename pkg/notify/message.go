package notify

import (
	"context"
	"errors"
	"fmt"
)

type Kind string

const (
	KindBookingCreated       Kind = "booking_created"
	KindBookingStatusChanged Kind = "booking_status_changed"
	KindBookingRescheduled   Kind = "booking_rescheduled"
	KindBookingCancelled     Kind = "booking_cancelled"
)

// Message is a customer-facing notification. Data carries the template
// variables; the text itself is rendered by the sender.
type Message struct {
	Kind        Kind              `json:"kind"`
	CustomerID  string            `json:"customer_id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	DeviceToken string            `json:"device_token,omitempty"`
	Data        map[string]string `json:"data"`
}

// ErrNoRecipient means the customer has no channel the sender can reach.
// Retrying will not help.
var ErrNoRecipient = errors.New("no recipient for notification")

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type template struct {
	title string
	body  string
}

var templates = map[Kind]template{
	KindBookingCreated: {
		title: "Booking received",
		body:  "Hi {name}, we received booking {reference} for {service} on {date} at {time}.",
	},
	KindBookingStatusChanged: {
		title: "Booking update",
		body:  "Booking {reference} is now {status}.",
	},
	KindBookingRescheduled: {
		title: "Booking rescheduled",
		body:  "Booking {reference} moved from {old_date} {old_time} to {date} at {time}.",
	},
	KindBookingCancelled: {
		title: "Booking cancelled",
		body:  "Booking {reference} was cancelled. Fee: {fee}. Refund: {refund}.",
	},
}

// Render fills the template for msg.Kind with msg.Data.
func Render(msg Message) (title, body string, err error) {
	tpl, ok := templates[msg.Kind]
	if !ok {
		return "", "", fmt.Errorf("unknown notification kind %q", msg.Kind)
	}

	vars := make(map[string]string, len(msg.Data)+1)
	for k, v := range msg.Data {
		vars[k] = v
	}
	if _, ok := vars["name"]; !ok {
		vars["name"] = msg.Name
	}

	return fill(tpl.title, vars), fill(tpl.body, vars), nil
}

func fill(text string, vars map[string]string) string {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			out = append(out, text[i])
			continue
		}
		end := i + 1
		for end < len(text) && text[end] != '}' {
			end++
		}
		if end == len(text) {
			out = append(out, text[i:]...)
			break
		}
		out = append(out, vars[text[i+1:end]]...)
		i = end
	}
	return string(out)
}
