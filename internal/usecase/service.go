package usecase

import (
	"time"

	"mobile-booking/internal/data/repository"
	"mobile-booking/internal/domain"
	"mobile-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Catalog  CatalogService
	Distance DistanceService
	Pricing  PricingService
	Slot     SlotService
	Status   StatusService
	Booking  BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, deps Deps, log *zap.Logger) *Service {
	deps = deps.withDefaults()

	distance := NewDistanceService(deps.Geocoder, DistancePolicyFromConfig(config.Pricing), log)
	pricing := NewPricingService(distance, log)
	slot := NewSlotService(repo.Slot, deps.Clock, log)
	status := NewStatusService(repo, deps, log)

	return &Service{
		Catalog:  NewCatalogService(repo.Service, log),
		Distance: distance,
		Pricing:  pricing,
		Slot:     slot,
		Status:   status,
		Booking:  NewBookingService(repo, slot, pricing, status, CancellationPolicyFromConfig(config.Cancellation), deps, log),
	}
}

func DistancePolicyFromConfig(c utils.PricingConfig) domain.DistancePolicy {
	return domain.DistancePolicy{
		Origin:           domain.Coordinates{Lat: c.OriginLat, Lon: c.OriginLon},
		FreeRadiusMiles:  c.FreeRadiusMiles,
		PerMileRate:      c.PerMileRate,
		MinimumSurcharge: c.MinimumSurcharge,
		MaximumSurcharge: c.MaximumSurcharge,
	}
}

func CancellationPolicyFromConfig(c utils.CancellationConfig) domain.CancellationPolicy {
	return domain.CancellationPolicy{
		FreeWindow: time.Duration(c.FreeWindowHours) * time.Hour,
		FeePercent: c.FeePercent,
	}
}
