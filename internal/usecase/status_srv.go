package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"mobile-booking/internal/apperror"
	"mobile-booking/internal/data/entity"
	"mobile-booking/internal/data/repository"
	"mobile-booking/internal/domain"
	"mobile-booking/pkg/mq"
	"mobile-booking/pkg/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Change describes one accepted status change for history and announcements.
type Change struct {
	From   *entity.BookingStatus
	Actor  Actor
	Reason *string
	Notes  *string
	Kind   notify.Kind
	// Data is merged into the notification template variables.
	Data map[string]string
	// Mutate adjusts other fields in the same write as the status change.
	Mutate func(b *entity.Booking)
}

type StatusService interface {
	Validate(booking *entity.Booking, to entity.BookingStatus) domain.TransitionResult
	// Apply validates, persists the new status, records history and announces
	// the change. booking must be the stored state; it is written back if the
	// history entry cannot be recorded.
	Apply(ctx context.Context, booking *entity.Booking, to entity.BookingStatus, change Change) (*entity.Booking, domain.TransitionResult, error)
	AppendHistory(ctx context.Context, booking *entity.Booking, change Change) error
	// Announce sends the customer notification and the status event. Failures
	// are logged and never returned.
	Announce(ctx context.Context, booking *entity.Booking, change Change)
	History(ctx context.Context, bookingID uuid.UUID) ([]*entity.StatusHistoryEntry, error)
}

type statusService struct {
	repo       *repository.Repository
	dispatcher Dispatcher
	events     EventPublisher
	clock      func() time.Time
	loc        *time.Location
	log        *zap.Logger
}

func NewStatusService(repo *repository.Repository, deps Deps, log *zap.Logger) StatusService {
	deps = deps.withDefaults()
	return &statusService{
		repo:       repo,
		dispatcher: deps.Dispatcher,
		events:     deps.Events,
		clock:      deps.Clock,
		loc:        deps.Location,
		log:        log.With(zap.String("service", "status")),
	}
}

func (s *statusService) Validate(booking *entity.Booking, to entity.BookingStatus) domain.TransitionResult {
	return domain.ValidateTransition(booking.Status, to, domain.TransitionContext{
		Now:            s.clock(),
		ScheduledStart: booking.ScheduledStart,
		PaymentStatus:  booking.PaymentStatus,
	})
}

func (s *statusService) Apply(ctx context.Context, booking *entity.Booking, to entity.BookingStatus, change Change) (*entity.Booking, domain.TransitionResult, error) {
	result := s.Validate(booking, to)
	if !result.Allowed {
		return nil, result, apperror.InvalidTransition(result.Reason)
	}

	from := booking.Status
	updated := *booking
	if change.Mutate != nil {
		change.Mutate(&updated)
	}
	updated.Status = to
	updated.UpdatedAt = s.clock()

	if err := s.repo.Booking.Update(ctx, &updated, repository.StateOf(booking)); err != nil {
		return nil, result, updateError(err)
	}

	change.From = &from
	if err := s.AppendHistory(ctx, &updated, change); err != nil {
		if restoreErr := s.repo.Booking.Update(ctx, booking, repository.StateOf(&updated)); restoreErr != nil {
			s.log.Error("Failed to restore booking after history failure",
				zap.Error(apperror.Inconsistency("booking status changed without history", restoreErr)),
				zap.String("booking_id", booking.ID.String()),
			)
		}
		return nil, result, err
	}

	if result.Warning != "" {
		s.log.Warn("Status transition accepted with warning",
			zap.String("booking_id", booking.ID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.String("warning", result.Warning),
		)
	}

	s.Announce(ctx, &updated, change)
	return &updated, result, nil
}

func (s *statusService) AppendHistory(ctx context.Context, booking *entity.Booking, change Change) error {
	entry := &entity.StatusHistoryEntry{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.clock(),
		},
		BookingID:  booking.ID,
		FromStatus: change.From,
		ToStatus:   booking.Status,
		ActorID:    change.Actor.HistoryID(),
		Reason:     change.Reason,
		Notes:      change.Notes,
	}

	if err := s.repo.StatusHistory.Append(ctx, entry); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *statusService) Announce(ctx context.Context, booking *entity.Booking, change Change) {
	s.notify(ctx, booking, change)
	s.publish(ctx, booking, change)
}

func (s *statusService) notify(ctx context.Context, booking *entity.Booking, change Change) {
	customer, err := s.repo.Customer.FindByID(ctx, booking.CustomerID)
	if err != nil || customer == nil {
		s.log.Warn("Skipping notification, customer not loaded",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("customer_id", booking.CustomerID.String()),
		)
		return
	}

	kind := change.Kind
	if kind == "" {
		kind = notify.KindBookingStatusChanged
	}

	data := map[string]string{
		"booking_id": booking.ID.String(),
		"reference":  booking.Reference,
		"status":     string(booking.Status),
		"service":    booking.ServiceName,
		"date":       booking.ScheduledDate.Format(dateLayout),
		"time":       booking.ScheduledStart.In(s.loc).Format(timeLayout),
		"total":      strconv.FormatFloat(booking.TotalPrice, 'f', 2, 64),
	}
	for k, v := range change.Data {
		data[k] = v
	}

	msg := notify.Message{
		Kind:       kind,
		CustomerID: customer.ID.String(),
		Name:       customer.Name,
		Email:      customer.Email,
		Data:       data,
	}
	if customer.DeviceToken != nil {
		msg.DeviceToken = *customer.DeviceToken
	}

	if err := s.dispatcher.Notify(ctx, msg); err != nil {
		s.log.Warn("Failed to dispatch notification",
			zap.Error(apperror.DependencyFailure("notification queue", err)),
			zap.String("booking_id", booking.ID.String()),
			zap.String("kind", string(kind)),
		)
	}
}

func (s *statusService) publish(ctx context.Context, booking *entity.Booking, change Change) {
	event := mq.StatusChangedEvent{
		BookingID:  booking.ID.String(),
		Reference:  booking.Reference,
		CustomerID: booking.CustomerID.String(),
		ToStatus:   string(booking.Status),
		Reason:     change.Reason,
		OccurredAt: s.clock(),
	}
	if change.From != nil {
		from := string(*change.From)
		event.FromStatus = &from
	}
	if id := change.Actor.HistoryID(); id != nil {
		actor := id.String()
		event.ActorID = &actor
	}

	if err := s.events.PublishJSON(ctx, mq.RoutingKeyStatusChanged, event); err != nil {
		s.log.Warn("Failed to publish status event",
			zap.Error(apperror.DependencyFailure("event broker", err)),
			zap.String("booking_id", booking.ID.String()),
		)
	}
}

func (s *statusService) History(ctx context.Context, bookingID uuid.UUID) ([]*entity.StatusHistoryEntry, error) {
	entries, err := s.repo.StatusHistory.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load history: %w", err))
	}
	return entries, nil
}
