package usecase

import (
	"context"
	"testing"

	"mobile-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalogService_ListsActiveOnly(t *testing.T) {
	h := newHarness(t)
	retired := uuid.New()
	h.store.services[retired] = entity.Service{Base: entity.Base{ID: retired}, Name: "Wax", BasePrice: 40, DurationMinutes: 30}

	svc := NewCatalogService(h.store.repository().Service, zap.NewNop())
	services, err := svc.ListServices(context.Background())
	require.NoError(t, err)

	require.Len(t, services, 1)
	assert.Equal(t, h.serviceID.String(), services[0].ID)
	assert.Equal(t, 100.00, services[0].BasePrice)
}
