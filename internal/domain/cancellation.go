package domain

import "time"

type CancellationPolicy struct {
	FreeWindow time.Duration
	FeePercent float64
}

type CancellationQuote struct {
	Fee          float64 `json:"fee"`
	RefundAmount float64 `json:"refund_amount"`
	WithinWindow bool    `json:"within_window"`
}

// Quote charges the fee when the appointment starts inside the free window
// (or has already started). waive is used for business-initiated cancellations.
func (p CancellationPolicy) Quote(total float64, scheduledStart, now time.Time, waive bool) CancellationQuote {
	within := scheduledStart.Sub(now) < p.FreeWindow
	if waive || !within {
		return CancellationQuote{RefundAmount: Round2(total), WithinWindow: within}
	}

	fee := Round2(total * p.FeePercent / 100)
	if fee > total {
		fee = Round2(total)
	}
	return CancellationQuote{
		Fee:          fee,
		RefundAmount: Round2(total - fee),
		WithinWindow: true,
	}
}
