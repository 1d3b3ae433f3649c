package domain

import (
	"fmt"

	"mobile-booking/internal/data/entity"
)

var sizeMultipliers = map[entity.VehicleSize]float64{
	entity.VehicleSizeSmall:      1.0,
	entity.VehicleSizeMedium:     1.2,
	entity.VehicleSizeLarge:      1.4,
	entity.VehicleSizeExtraLarge: 1.6,
}

func SizeMultiplier(size entity.VehicleSize) (float64, bool) {
	m, ok := sizeMultipliers[size]
	return m, ok
}

const (
	LineBasePrice         = "base_price"
	LineSizeAdjustment    = "size_adjustment"
	LineDistanceSurcharge = "distance_surcharge"
)

type PriceLine struct {
	Code   string  `json:"code"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type PriceBreakdown struct {
	BasePrice         float64     `json:"base_price"`
	SizeMultiplier    float64     `json:"size_multiplier"`
	ServiceSubtotal   float64     `json:"service_subtotal"`
	DistanceSurcharge float64     `json:"distance_surcharge"`
	Total             float64     `json:"total"`
	Lines             []PriceLine `json:"lines"`
}

// SumLines adds the recorded lines and rounds the result to cents.
func (b PriceBreakdown) SumLines() float64 {
	var sum float64
	for _, line := range b.Lines {
		sum += line.Amount
	}
	return Round2(sum)
}

// CalculatePrice assumes inputs were validated; an unknown size is still an error.
func CalculatePrice(basePrice float64, size entity.VehicleSize, surcharge float64) (PriceBreakdown, error) {
	multiplier, ok := SizeMultiplier(size)
	if !ok {
		return PriceBreakdown{}, fmt.Errorf("unknown vehicle size %q", size)
	}

	base := Round2(basePrice)
	subtotal := Round2(basePrice * multiplier)
	surcharge = Round2(surcharge)

	breakdown := PriceBreakdown{
		BasePrice:         base,
		SizeMultiplier:    multiplier,
		ServiceSubtotal:   subtotal,
		DistanceSurcharge: surcharge,
		Lines: []PriceLine{
			{Code: LineBasePrice, Label: "Service base price", Amount: base},
			{Code: LineSizeAdjustment, Label: fmt.Sprintf("Vehicle size (%s x%.1f)", size, multiplier), Amount: Round2(subtotal - base)},
			{Code: LineDistanceSurcharge, Label: "Travel surcharge", Amount: surcharge},
		},
	}
	// The total is derived from the lines so the two can never drift apart.
	breakdown.Total = breakdown.SumLines()
	return breakdown, nil
}
