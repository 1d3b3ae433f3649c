package usecase

import (
	"context"

	"mobile-booking/internal/apperror"
	"mobile-booking/internal/data/repository"
	"mobile-booking/internal/dto/response"

	"go.uber.org/zap"
)

// CatalogService lists the services customers can book.
type CatalogService interface {
	ListServices(ctx context.Context) ([]response.ServiceResponse, error)
}

type catalogService struct {
	repo repository.ServiceRepository
	log  *zap.Logger
}

func NewCatalogService(repo repository.ServiceRepository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListServices(ctx context.Context) ([]response.ServiceResponse, error) {
	services, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	result := make([]response.ServiceResponse, 0, len(services))
	for _, svc := range services {
		result = append(result, response.ServiceToResponse(svc))
	}
	return result, nil
}
