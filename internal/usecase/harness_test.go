package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"mobile-booking/internal/apperror"
	"mobile-booking/internal/data/entity"
	"mobile-booking/internal/domain"
	"mobile-booking/internal/dto/request"
	"mobile-booking/internal/dto/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type harness struct {
	store      *memStore
	dispatcher *fakeDispatcher
	events     *fakePublisher
	now        time.Time

	slots   SlotService
	status  StatusService
	booking BookingService

	serviceID uuid.UUID
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		store:      newMemStore(),
		dispatcher: &fakeDispatcher{},
		events:     &fakePublisher{},
		now:        time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		serviceID:  uuid.New(),
	}

	h.store.services[h.serviceID] = entity.Service{
		Base:            entity.Base{ID: h.serviceID},
		Name:            "Full Detail",
		BasePrice:       100.00,
		DurationMinutes: 90,
		IsActive:        true,
	}

	log := zap.NewNop()
	repo := h.store.repository()
	deps := Deps{
		Dispatcher: h.dispatcher,
		Events:     h.events,
		Clock:      func() time.Time { return h.now },
		Location:   time.UTC,
	}.withDefaults()

	h.slots = NewSlotService(repo.Slot, deps.Clock, log)
	h.status = NewStatusService(repo, deps, log)
	pricing := NewPricingService(fixedDistance{estimate: domain.DistanceEstimate{DistanceMiles: 22.5, SurchargeAmount: 10.00}}, log)
	policy := domain.CancellationPolicy{FreeWindow: 24 * time.Hour, FeePercent: 50}
	h.booking = NewBookingService(repo, h.slots, pricing, h.status, policy, deps, log)

	return h
}

func (h *harness) addSlot(date, start string) uuid.UUID {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		panic(err)
	}
	id := uuid.New()
	h.store.slots[id] = entity.TimeSlot{
		Base:        entity.Base{ID: id},
		SlotDate:    day,
		StartTime:   start,
		IsAvailable: true,
	}
	return id
}

// holdReads makes the next n booking reads wait for each other, so every
// caller works from the same copy of the booking.
func (h *harness) holdReads(n int) {
	var arrived sync.WaitGroup
	arrived.Add(n)

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.afterBookingFind = func() {
		arrived.Done()
		arrived.Wait()
	}
}

// concurrently runs fn once per index and returns the errors in index order.
func concurrently(n int, fn func(i int) error) []error {
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fn(i)
		}(i)
	}
	wg.Wait()
	return errs
}

// splitConflicts counts successes and requires every failure to be a lost
// guarded write.
func splitConflicts(t *testing.T, errs []error) (won, lost int) {
	t.Helper()
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		requireCode(t, err, apperror.CodeInvalidTransition)
		lost++
	}
	return won, lost
}

func customerActor() Actor {
	return Actor{ID: uuid.New(), Role: entity.RoleCustomer}
}

func adminActor() Actor {
	return Actor{ID: uuid.New(), Role: entity.RoleAdmin}
}

func bookingRequest(serviceID, slotID uuid.UUID, email string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		Customer: request.CustomerInput{
			Name:        "Dana Reyes",
			Email:       email,
			Phone:       "+1 555 0100",
			DeviceToken: "device-token",
		},
		Vehicle: request.VehicleInput{
			Make:         "Toyota",
			Model:        "Camry",
			Year:         2021,
			Size:         "medium",
			LicensePlate: "abc-" + email[:3],
		},
		Address: request.AddressInput{
			Street:     "12 Main St",
			City:       "Springfield",
			State:      "NJ",
			PostalCode: "07081",
		},
		ServiceID: serviceID.String(),
		SlotID:    slotID.String(),
	}
}

func (h *harness) create(t *testing.T, actor Actor, slotID uuid.UUID) *response.BookingResponse {
	t.Helper()
	resp, err := h.booking.CreateBooking(context.Background(), actor, bookingRequest(h.serviceID, slotID, "dana@example.com"))
	require.NoError(t, err)
	return resp
}

func (h *harness) stored(t *testing.T, id string) entity.Booking {
	t.Helper()
	b, ok := h.store.booking(uuid.MustParse(id))
	require.True(t, ok, "booking %s not stored", id)
	return b
}

func requireCode(t *testing.T, err error, code apperror.Code) *apperror.Error {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code, appErr.Error())
	return appErr
}
