package usecase

import (
	"context"
	"errors"

	"mobile-booking/internal/apperror"
	"mobile-booking/internal/domain"
	"mobile-booking/pkg/geocode"

	"go.uber.org/zap"
)

type DistanceService interface {
	// Estimate never fails: an unresolvable postal code is charged the
	// minimum surcharge and flagged as estimated.
	Estimate(ctx context.Context, postalCode string) domain.DistanceEstimate
}

type distanceService struct {
	geocoder Geocoder
	policy   domain.DistancePolicy
	log      *zap.Logger
}

func NewDistanceService(geocoder Geocoder, policy domain.DistancePolicy, log *zap.Logger) DistanceService {
	return &distanceService{
		geocoder: geocoder,
		policy:   policy,
		log:      log.With(zap.String("service", "distance")),
	}
}

func (s *distanceService) Estimate(ctx context.Context, postalCode string) domain.DistanceEstimate {
	if s.geocoder == nil {
		return s.policy.FailSafe()
	}

	point, err := s.geocoder.Lookup(ctx, postalCode)
	if err != nil {
		depErr := apperror.DependencyFailure("geocoder", err)
		s.log.Warn("Geocode lookup failed, charging minimum surcharge",
			zap.Error(depErr),
			zap.String("code", string(depErr.Code)),
			zap.String("postal_code", postalCode),
			zap.Bool("not_found", errors.Is(err, geocode.ErrNotFound)),
		)
		return s.policy.FailSafe()
	}

	estimate := s.policy.Estimate(domain.Coordinates{Lat: point.Lat, Lon: point.Lon})
	s.log.Debug("Distance estimated",
		zap.String("postal_code", postalCode),
		zap.Float64("distance_miles", estimate.DistanceMiles),
		zap.Float64("surcharge", estimate.SurchargeAmount),
	)
	return estimate
}
