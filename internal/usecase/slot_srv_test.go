package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"mobile-booking/internal/apperror"
	"mobile-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotService_ConcurrentClaimHasOneWinner(t *testing.T) {
	h := newHarness(t)
	slotID := h.addSlot("2026-03-10", "10:00")

	const n = 32
	var (
		wg        sync.WaitGroup
		won       atomic.Int32
		conflicts atomic.Int32
	)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := h.slots.Claim(context.Background(), slotID)
			if err == nil {
				won.Add(1)
			} else if apperror.Is(err, apperror.CodeSlotUnavailable) {
				conflicts.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), won.Load())
	assert.Equal(t, int32(n-1), conflicts.Load())
}

func TestSlotService_ClaimUnknownSlot(t *testing.T) {
	h := newHarness(t)

	err := h.slots.Claim(context.Background(), uuid.New())
	requireCode(t, err, apperror.CodeNotFound)
}

func TestSlotService_ReleaseIsIdempotent(t *testing.T) {
	h := newHarness(t)
	slotID := h.addSlot("2026-03-10", "10:00")
	ctx := context.Background()

	require.NoError(t, h.slots.Claim(ctx, slotID))
	require.NoError(t, h.slots.Release(ctx, slotID))
	require.NoError(t, h.slots.Release(ctx, slotID))
	assert.True(t, h.store.slot(slotID).IsAvailable)

	require.NoError(t, h.slots.Claim(ctx, slotID))
}

func TestSlotService_CreateAndFind(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, err := h.slots.CreateSlot(ctx, &request.CreateSlotRequest{Date: "2026-03-10", Time: "14:00", Notes: "north crew"})
	require.NoError(t, err)
	assert.True(t, created.IsAvailable)

	_, err = h.slots.CreateSlot(ctx, &request.CreateSlotRequest{Date: "2026-03-10", Time: "14:00"})
	appErr := requireCode(t, err, apperror.CodeValidation)
	assert.Contains(t, appErr.Fields, "time")

	_, err = h.slots.CreateSlot(ctx, &request.CreateSlotRequest{Date: "10/03/2026", Time: "2pm"})
	appErr = requireCode(t, err, apperror.CodeValidation)
	assert.Contains(t, appErr.Fields, "date")
	assert.Contains(t, appErr.Fields, "time")

	found, err := h.slots.FindBySchedule(ctx, "2026-03-10", "14:00")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID.String())

	_, err = h.slots.FindBySchedule(ctx, "2026-03-10", "15:00")
	requireCode(t, err, apperror.CodeNotFound)
}

func TestSlotService_ListAvailableSkipsClaimed(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	morning := h.addSlot("2026-03-10", "09:00")
	h.addSlot("2026-03-10", "13:00")
	h.addSlot("2026-03-11", "09:00")
	require.NoError(t, h.slots.Claim(ctx, morning))

	slots, err := h.slots.ListAvailable(ctx, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "13:00", slots[0].Time)

	_, err = h.slots.ListAvailable(ctx, "tomorrow")
	requireCode(t, err, apperror.CodeValidation)
}
