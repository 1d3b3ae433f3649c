package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPolicy() DistancePolicy {
	return DistancePolicy{
		Origin:           Coordinates{Lat: 40.7128, Lon: -74.0060},
		FreeRadiusMiles:  10,
		PerMileRate:      1.50,
		MinimumSurcharge: 5.00,
		MaximumSurcharge: 50.00,
	}
}

func TestHaversineMiles(t *testing.T) {
	newYork := Coordinates{Lat: 40.7128, Lon: -74.0060}
	losAngeles := Coordinates{Lat: 34.0522, Lon: -118.2437}

	assert.InDelta(t, 2445, HaversineMiles(newYork, losAngeles), 10)
	assert.Equal(t, 0.0, HaversineMiles(newYork, newYork))
}

func TestDistancePolicy_Estimate(t *testing.T) {
	policy := testPolicy()

	inside := policy.Estimate(Coordinates{Lat: 40.7306, Lon: -73.9352})
	assert.True(t, inside.WithinFreeRadius)
	assert.Zero(t, inside.SurchargeAmount)
	assert.False(t, inside.Estimated)

	// Philadelphia is roughly 80 miles away, well past the maximum.
	far := policy.Estimate(Coordinates{Lat: 39.9526, Lon: -75.1652})
	assert.False(t, far.WithinFreeRadius)
	assert.Equal(t, 50.00, far.SurchargeAmount)
}

func TestDistancePolicy_SurchargeClamp(t *testing.T) {
	policy := testPolicy()

	assert.Zero(t, policy.Surcharge(9.5))
	assert.Equal(t, 5.00, policy.Surcharge(11))  // 1.50 raised to the minimum
	assert.Equal(t, 15.00, policy.Surcharge(20)) // 10 excess miles
	assert.Equal(t, 50.00, policy.Surcharge(100))
}

func TestDistancePolicy_FailSafeChargesMinimum(t *testing.T) {
	estimate := testPolicy().FailSafe()

	assert.False(t, estimate.WithinFreeRadius)
	assert.True(t, estimate.Estimated)
	assert.Equal(t, 5.00, estimate.SurchargeAmount)
}
