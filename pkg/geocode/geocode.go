package geocode

import (
	"context"
	"errors"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

var ErrNotFound = errors.New("postal code not found")

type Geocoder interface {
	Lookup(ctx context.Context, postalCode string) (Point, error)
}
