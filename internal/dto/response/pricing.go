package response

import "mobile-booking/internal/domain"

type PriceQuoteResponse struct {
	domain.PriceBreakdown
	DurationMinutes int                     `json:"duration_minutes"`
	Distance        domain.DistanceEstimate `json:"distance"`
}
