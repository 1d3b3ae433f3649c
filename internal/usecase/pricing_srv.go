package usecase

import (
	"context"

	"mobile-booking/internal/apperror"
	"mobile-booking/internal/data/entity"
	"mobile-booking/internal/domain"
	"mobile-booking/internal/dto/request"
	"mobile-booking/internal/dto/response"
	"mobile-booking/pkg/utils"

	"go.uber.org/zap"
)

type PricingService interface {
	Quote(ctx context.Context, req *request.PriceQuoteRequest) (*response.PriceQuoteResponse, error)
}

type pricingService struct {
	distance DistanceService
	log      *zap.Logger
}

func NewPricingService(distance DistanceService, log *zap.Logger) PricingService {
	return &pricingService{
		distance: distance,
		log:      log.With(zap.String("service", "pricing")),
	}
}

// Quote validates every input before the distance lookup so a bad request
// never reaches the geocoder.
func (s *pricingService) Quote(ctx context.Context, req *request.PriceQuoteRequest) (*response.PriceQuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Price quote validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation(errs)
	}

	estimate := s.distance.Estimate(ctx, req.PostalCode)

	breakdown, err := domain.CalculatePrice(req.BasePrice, entity.VehicleSize(req.VehicleSize), estimate.SurchargeAmount)
	if err != nil {
		return nil, apperror.ValidationField("vehicle_size", err.Error())
	}

	return &response.PriceQuoteResponse{
		PriceBreakdown:  breakdown,
		DurationMinutes: req.DurationMinutes,
		Distance:        estimate,
	}, nil
}
