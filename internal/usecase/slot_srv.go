package usecase

import (
	"context"
	"time"

	"mobile-booking/internal/apperror"
	"mobile-booking/internal/data/entity"
	"mobile-booking/internal/data/repository"
	"mobile-booking/internal/dto/request"
	"mobile-booking/internal/dto/response"
	"mobile-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type SlotService interface {
	CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.SlotResponse, error)
	ListAvailable(ctx context.Context, date string) ([]response.SlotResponse, error)

	// Claim is the single compare-and-set that guards a slot. Losing the race
	// yields SLOT_UNAVAILABLE.
	Claim(ctx context.Context, slotID uuid.UUID) error
	// Release is idempotent.
	Release(ctx context.Context, slotID uuid.UUID) error
	FindBySchedule(ctx context.Context, date, start string) (*entity.TimeSlot, error)
	Get(ctx context.Context, slotID uuid.UUID) (*entity.TimeSlot, error)
}

type slotService struct {
	repo  repository.SlotRepository
	clock func() time.Time
	log   *zap.Logger
}

func NewSlotService(repo repository.SlotRepository, clock func() time.Time, log *zap.Logger) SlotService {
	return &slotService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "slot")),
	}
}

func (s *slotService) CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.SlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}

	date, start, err := parseSchedule(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindBySchedule(ctx, date, start)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.ValidationField("time", "A slot already exists at this date and time")
	}

	now := s.clock()
	slot := &entity.TimeSlot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SlotDate:    date,
		StartTime:   start,
		IsAvailable: true,
		Notes:       utils.StringPtr(req.Notes),
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("Time slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("date", req.Date),
		zap.String("time", start),
	)

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

func (s *slotService) ListAvailable(ctx context.Context, date string) ([]response.SlotResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, apperror.ValidationField("date", "Must match the format "+dateLayout)
	}

	slots, err := s.repo.FindAvailableByDate(ctx, day)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	result := make([]response.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, response.SlotToResponse(slot))
	}
	return result, nil
}

func (s *slotService) Claim(ctx context.Context, slotID uuid.UUID) error {
	claimed, err := s.repo.Claim(ctx, slotID)
	if err != nil {
		return apperror.Internal(err)
	}
	if claimed {
		s.log.Debug("Slot claimed", zap.String("slot_id", slotID.String()))
		return nil
	}

	// Nothing matched: either someone else holds it or it does not exist.
	slot, err := s.repo.FindByID(ctx, slotID)
	if err != nil {
		return apperror.Internal(err)
	}
	if slot == nil {
		return apperror.NotFound("slot", slotID.String())
	}

	s.log.Info("Slot claim lost", zap.String("slot_id", slotID.String()))
	return apperror.SlotUnavailable(slotID.String())
}

func (s *slotService) Release(ctx context.Context, slotID uuid.UUID) error {
	if err := s.repo.Release(ctx, slotID); err != nil {
		return apperror.Internal(err)
	}
	s.log.Debug("Slot released", zap.String("slot_id", slotID.String()))
	return nil
}

func (s *slotService) FindBySchedule(ctx context.Context, date, start string) (*entity.TimeSlot, error) {
	day, hhmm, err := parseSchedule(date, start)
	if err != nil {
		return nil, err
	}

	slot, err := s.repo.FindBySchedule(ctx, day, hhmm)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if slot == nil {
		return nil, apperror.NotFound("slot", date+" "+hhmm)
	}
	return slot, nil
}

func (s *slotService) Get(ctx context.Context, slotID uuid.UUID) (*entity.TimeSlot, error) {
	slot, err := s.repo.FindByID(ctx, slotID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if slot == nil {
		return nil, apperror.NotFound("slot", slotID.String())
	}
	return slot, nil
}

// parseSchedule normalizes "2026-03-10" and "9:00" to a date and "09:00".
func parseSchedule(date, start string) (time.Time, string, error) {
	fields := map[string]string{}

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		fields["date"] = "Must match the format " + dateLayout
	}
	t, err := time.Parse(timeLayout, start)
	if err != nil {
		fields["time"] = "Must match the format " + timeLayout
	}
	if len(fields) > 0 {
		return time.Time{}, "", apperror.Validation(fields)
	}

	return day, t.Format(timeLayout), nil
}
