package domain

import "math"

// Round2 rounds half-up (away from zero) to cents. The nudge absorbs binary
// representation error such as 1.005 being stored as 1.00499999...
func Round2(v float64) float64 {
	return math.Round(v*100+math.Copysign(1e-7, v)) / 100
}
