package domain

import "math"

const earthRadiusMiles = 3958.8

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// HaversineMiles returns the great-circle distance between a and b.
func HaversineMiles(a, b Coordinates) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(h)))
}

type DistancePolicy struct {
	Origin           Coordinates
	FreeRadiusMiles  float64
	PerMileRate      float64
	MinimumSurcharge float64
	MaximumSurcharge float64
}

type DistanceEstimate struct {
	DistanceMiles    float64 `json:"distance_miles"`
	WithinFreeRadius bool    `json:"within_free_radius"`
	SurchargeAmount  float64 `json:"surcharge_amount"`
	// Estimated is set when the destination could not be resolved and the
	// conservative default was charged.
	Estimated bool `json:"estimated"`
}

func (p DistancePolicy) Estimate(dest Coordinates) DistanceEstimate {
	miles := HaversineMiles(p.Origin, dest)
	if miles <= p.FreeRadiusMiles {
		return DistanceEstimate{DistanceMiles: Round2(miles), WithinFreeRadius: true}
	}

	return DistanceEstimate{
		DistanceMiles:   Round2(miles),
		SurchargeAmount: p.Surcharge(miles),
	}
}

// Surcharge clamps the per-mile charge for the miles beyond the free radius.
func (p DistancePolicy) Surcharge(miles float64) float64 {
	excess := miles - p.FreeRadiusMiles
	if excess <= 0 {
		return 0
	}
	amount := excess * p.PerMileRate
	amount = math.Max(amount, p.MinimumSurcharge)
	amount = math.Min(amount, p.MaximumSurcharge)
	return Round2(amount)
}

// FailSafe is used when the destination cannot be geocoded: the booking is
// treated as out of radius and charged the minimum surcharge.
func (p DistancePolicy) FailSafe() DistanceEstimate {
	return DistanceEstimate{
		SurchargeAmount: Round2(p.MinimumSurcharge),
		Estimated:       true,
	}
}
