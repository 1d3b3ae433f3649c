package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mobile-booking/internal/apperror"
	"mobile-booking/internal/data/entity"
	"mobile-booking/internal/data/repository"
	"mobile-booking/internal/domain"
	"mobile-booking/internal/dto/request"
	"mobile-booking/internal/dto/response"
	"mobile-booking/pkg/notify"
	"mobile-booking/pkg/payment"
	"mobile-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// referenceAttempts bounds how often Create draws a new reference after a collision.
const referenceAttempts = 3

type BookingService interface {
	CreateBooking(ctx context.Context, actor Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	RescheduleBooking(ctx context.Context, actor Actor, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, actor Actor, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error)
	TransitionStatus(ctx context.Context, actor Actor, bookingID string, req *request.TransitionStatusRequest) (*response.BookingResponse, error)
	RecordPayment(ctx context.Context, actor Actor, bookingID string, req *request.RecordPaymentRequest) (*response.BookingResponse, error)

	GetBooking(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error)
	GetHistory(ctx context.Context, actor Actor, bookingID string) ([]response.StatusHistoryResponse, error)
	GetCustomerBookings(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// MarkRefunded is called by the task worker once the provider accepted a refund.
	MarkRefunded(ctx context.Context, bookingID, refundID string) error
}

type bookingService struct {
	repo       *repository.Repository
	slots      SlotService
	pricing    PricingService
	status     StatusService
	dispatcher Dispatcher
	cancel     domain.CancellationPolicy
	clock      func() time.Time
	loc        *time.Location
	log        *zap.Logger

	// newReference is swapped in tests to force collisions.
	newReference func(time.Time) string
}

func NewBookingService(
	repo *repository.Repository,
	slots SlotService,
	pricing PricingService,
	status StatusService,
	cancel domain.CancellationPolicy,
	deps Deps,
	log *zap.Logger,
) BookingService {
	deps = deps.withDefaults()
	return &bookingService{
		repo:       repo,
		slots:      slots,
		pricing:    pricing,
		status:     status,
		dispatcher: deps.Dispatcher,
		cancel:     cancel,
		clock:      deps.Clock,
		loc:        deps.Location,
		log:        log.With(zap.String("service", "booking")),

		newReference: utils.GenerateReference,
	}
}

// CreateBooking claims the slot before any booking row is written and undoes
// the claim if a later step fails.
func (s *bookingService) CreateBooking(ctx context.Context, actor Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation(errs)
	}

	serviceID, _ := uuid.Parse(req.ServiceID)
	slotID, _ := uuid.Parse(req.SlotID)

	customer, err := s.resolveCustomer(ctx, actor, req.Customer)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.resolveVehicle(ctx, customer.ID, req.Vehicle)
	if err != nil {
		return nil, err
	}
	address, err := s.resolveAddress(ctx, customer.ID, req.Address)
	if err != nil {
		return nil, err
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if service == nil || !service.IsActive {
		return nil, apperror.NotFound("service", req.ServiceID)
	}

	quote, err := s.pricing.Quote(ctx, &request.PriceQuoteRequest{
		BasePrice:       service.BasePrice,
		DurationMinutes: service.DurationMinutes,
		VehicleSize:     string(vehicle.Size),
		PostalCode:      address.PostalCode,
	})
	if err != nil {
		return nil, err
	}

	slot, err := s.slots.Get(ctx, slotID)
	if err != nil {
		return nil, err
	}
	start, err := slot.StartsAt(s.loc)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("slot %s has unreadable start time: %w", slot.ID, err))
	}
	now := s.clock()
	if !start.After(now) {
		return nil, apperror.ValidationField("slot_id", "Slot has already started")
	}

	if err := s.slots.Claim(ctx, slotID); err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:           s.newReference(now),
		CustomerID:          customer.ID,
		ServiceID:           service.ID,
		VehicleID:           vehicle.ID,
		AddressID:           address.ID,
		SlotID:              &slotID,
		BasePrice:           quote.BasePrice,
		SizeMultiplier:      quote.SizeMultiplier,
		DistanceSurcharge:   quote.DistanceSurcharge,
		TotalPrice:          quote.Total,
		Status:              entity.BookingStatusPending,
		SpecialInstructions: utils.StringPtr(req.SpecialInstructions),
		ScheduledDate:       slot.SlotDate,
		ScheduledStart:      start,
		ScheduledEnd:        start.Add(time.Duration(service.DurationMinutes) * time.Minute),
		PaymentStatus:       entity.PaymentStatusUnpaid,
		BookingSnapshot: entity.BookingSnapshot{
			ServiceName:            service.Name,
			ServiceDurationMinutes: service.DurationMinutes,
			VehicleMake:            vehicle.Make,
			VehicleModel:           vehicle.Model,
			VehicleYear:            vehicle.Year,
			VehicleSize:            vehicle.Size,
			VehicleLicensePlate:    vehicle.LicensePlate,
			AddressStreet:          address.Street,
			AddressCity:            address.City,
			AddressState:           address.State,
			AddressPostalCode:      address.PostalCode,
		},
	}

	if err := s.insertBooking(ctx, booking, now); err != nil {
		s.releaseSlot(ctx, slotID, "booking insert failed")
		return nil, apperror.Internal(err)
	}

	change := Change{Actor: actor, Kind: notify.KindBookingCreated}
	if quote.Distance.Estimated {
		change.Notes = utils.StringPtr("distance surcharge estimated, postal code could not be located")
	}
	if err := s.status.AppendHistory(ctx, booking, change); err != nil {
		if delErr := s.repo.Booking.Delete(ctx, booking.ID); delErr != nil {
			s.log.Error("Failed to remove booking without history",
				zap.Error(apperror.Inconsistency("booking left without history", delErr)),
				zap.String("booking_id", booking.ID.String()),
			)
		}
		s.releaseSlot(ctx, slotID, "history insert failed")
		return nil, err
	}

	s.status.Announce(ctx, booking, change)

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("customer_id", customer.ID.String()),
		zap.String("slot_id", slotID.String()),
		zap.Float64("total_price", booking.TotalPrice),
		zap.Bool("surcharge_estimated", quote.Distance.Estimated),
	)

	return response.BookingToResponse(booking), nil
}

// RescheduleBooking moves a booking to the slot at date/time. The new slot is
// claimed before the booking changes; the old one is released afterwards.
func (s *bookingService) RescheduleBooking(ctx context.Context, actor Actor, bookingID string, req *request.RescheduleBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}

	booking, err := s.loadBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	result := s.status.Validate(booking, entity.BookingStatusRescheduled)
	if !result.Allowed {
		return nil, apperror.InvalidTransition(result.Reason)
	}

	target, err := s.slots.FindBySchedule(ctx, req.Date, req.Time)
	if apperror.Is(err, apperror.CodeNotFound) {
		return nil, apperror.TimeSlotUnavailable(req.Date, req.Time)
	}
	if err != nil {
		return nil, err
	}
	if !target.IsAvailable || (booking.SlotID != nil && *booking.SlotID == target.ID) {
		return nil, apperror.TimeSlotUnavailable(req.Date, target.StartTime)
	}

	start, err := target.StartsAt(s.loc)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("slot %s has unreadable start time: %w", target.ID, err))
	}
	now := s.clock()
	if !start.After(now) {
		return nil, apperror.ValidationField("date", "New schedule must be in the future")
	}

	if err := s.slots.Claim(ctx, target.ID); err != nil {
		if apperror.Is(err, apperror.CodeSlotUnavailable) || apperror.Is(err, apperror.CodeNotFound) {
			return nil, apperror.TimeSlotUnavailable(req.Date, target.StartTime)
		}
		return nil, err
	}

	from := booking.Status
	oldSlotID := booking.SlotID
	oldDate := booking.ScheduledDate.Format(dateLayout)
	oldTime := booking.ScheduledStart.In(s.loc).Format(timeLayout)

	updated := *booking
	updated.SlotID = &target.ID
	updated.Status = entity.BookingStatusRescheduled
	updated.ScheduledDate = target.SlotDate
	updated.ScheduledStart = start
	updated.ScheduledEnd = start.Add(time.Duration(booking.ServiceDurationMinutes) * time.Minute)
	updated.UpdatedAt = now

	if err := s.repo.Booking.Update(ctx, &updated, repository.StateOf(booking)); err != nil {
		s.releaseSlot(ctx, target.ID, "reschedule update failed")
		return nil, updateError(err)
	}

	if oldSlotID != nil {
		if err := s.slots.Release(ctx, *oldSlotID); err != nil {
			s.log.Warn("Old slot not released after reschedule",
				zap.Error(apperror.Inconsistency("previous slot still marked unavailable", err)),
				zap.String("code", string(apperror.CodeInconsistency)),
				zap.String("booking_id", booking.ID.String()),
				zap.String("slot_id", oldSlotID.String()),
			)
		}
	}

	newDate := target.SlotDate.Format(dateLayout)
	change := Change{
		From:   &from,
		Actor:  actor,
		Reason: utils.StringPtr(req.Reason),
		Notes:  utils.StringPtr(fmt.Sprintf("moved from %s %s to %s %s", oldDate, oldTime, newDate, target.StartTime)),
		Kind:   notify.KindBookingRescheduled,
		Data: map[string]string{
			"old_date": oldDate,
			"old_time": oldTime,
		},
	}
	// The new schedule is already visible to the customer, so a missing
	// history row is reported rather than rolled back.
	if err := s.status.AppendHistory(ctx, &updated, change); err != nil {
		s.log.Error("Reschedule history not recorded",
			zap.Error(apperror.Inconsistency("reschedule committed without history", err)),
			zap.String("booking_id", booking.ID.String()),
		)
	}
	s.status.Announce(ctx, &updated, change)

	s.log.Info("Booking rescheduled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", oldDate+" "+oldTime),
		zap.String("to", newDate+" "+target.StartTime),
	)

	resp := response.BookingToResponse(&updated)
	resp.Warning = result.Warning
	return resp, nil
}

// CancelBooking picks the cancellation status from who is asking.
func (s *bookingService) CancelBooking(ctx context.Context, actor Actor, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}

	booking, err := s.loadBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	to := entity.BookingStatusCancelledByCustomer
	if actor.IsBusiness() {
		to = entity.BookingStatusCancelledByAdmin
	}
	return s.cancelBooking(ctx, actor, booking, to, strings.TrimSpace(req.Reason))
}

func (s *bookingService) cancelBooking(ctx context.Context, actor Actor, booking *entity.Booking, to entity.BookingStatus, reason string) (*response.BookingResponse, error) {
	result := s.status.Validate(booking, to)
	if !result.Allowed {
		return nil, apperror.InvalidTransition(result.Reason)
	}
	if to == entity.BookingStatusCancelledByAdmin && reason == "" {
		return nil, apperror.ValidationField("reason", "A reason is required when the business cancels a booking")
	}

	now := s.clock()
	quote := s.cancel.Quote(booking.TotalPrice, booking.ScheduledStart, now, to == entity.BookingStatusCancelledByAdmin)
	refundDue := booking.PaymentStatus == entity.PaymentStatusPaid && quote.RefundAmount > 0

	from := booking.Status
	oldSlotID := booking.SlotID

	updated := *booking
	updated.Status = to
	updated.SlotID = nil
	updated.CancellationFee = quote.Fee
	updated.RefundAmount = quote.RefundAmount
	updated.CancellationReason = utils.StringPtr(reason)
	updated.CancelledAt = &now
	updated.UpdatedAt = now
	if refundDue {
		updated.PaymentStatus = entity.PaymentStatusRefundPending
	}

	if err := s.repo.Booking.Update(ctx, &updated, repository.StateOf(booking)); err != nil {
		return nil, updateError(err)
	}

	// From here on the cancellation stands; every remaining step is best-effort.
	if oldSlotID != nil {
		s.releaseSlot(ctx, *oldSlotID, "booking cancelled")
	}

	change := Change{
		From:   &from,
		Actor:  actor,
		Reason: utils.StringPtr(reason),
		Kind:   notify.KindBookingCancelled,
		Data: map[string]string{
			"fee":    strconv.FormatFloat(quote.Fee, 'f', 2, 64),
			"refund": strconv.FormatFloat(quote.RefundAmount, 'f', 2, 64),
		},
	}
	if quote.Fee > 0 {
		change.Notes = utils.StringPtr(fmt.Sprintf("late cancellation fee %.2f", quote.Fee))
	}
	if err := s.status.AppendHistory(ctx, &updated, change); err != nil {
		s.log.Error("Cancellation history not recorded",
			zap.Error(apperror.Inconsistency("cancellation committed without history", err)),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	if refundDue {
		err := s.dispatcher.Refund(ctx, payment.RefundRequest{
			BookingID:       booking.ID.String(),
			Reference:       booking.Reference,
			PaymentIntentID: utils.StringValue(booking.PaymentReference),
			Amount:          quote.RefundAmount,
			Currency:        "usd",
		})
		if err != nil {
			s.log.Error("Failed to dispatch refund",
				zap.Error(apperror.DependencyFailure("refund queue", err)),
				zap.String("booking_id", booking.ID.String()),
				zap.Float64("amount", quote.RefundAmount),
			)
		}
	}

	s.status.Announce(ctx, &updated, change)

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(to)),
		zap.Float64("fee", quote.Fee),
		zap.Float64("refund", quote.RefundAmount),
		zap.Bool("refund_dispatched", refundDue),
	)

	resp := response.BookingToResponse(&updated)
	resp.Warning = result.Warning
	return resp, nil
}

// TransitionStatus is the generic path for operational status changes.
// Cancellations go through the cancellation workflow; rescheduling needs a
// new slot and has its own operation.
func (s *bookingService) TransitionStatus(ctx context.Context, actor Actor, bookingID string, req *request.TransitionStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}

	to := entity.BookingStatus(req.Status)
	reason := strings.TrimSpace(req.Reason)

	if to == entity.BookingStatusRescheduled {
		return nil, apperror.InvalidTransition("use the reschedule operation to move a booking to a new slot")
	}
	if to == entity.BookingStatusDeclined && reason == "" {
		return nil, apperror.ValidationField("reason", "A reason is required when declining a booking")
	}

	booking, err := s.loadBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	if to.IsCancellation() {
		return s.cancelBooking(ctx, actor, booking, to, reason)
	}

	// Declined and expired bookings never take place, so their slot goes back.
	frees := to == entity.BookingStatusDeclined || to == entity.BookingStatusExpired
	oldSlotID := booking.SlotID

	change := Change{
		Actor:  actor,
		Reason: utils.StringPtr(reason),
		Notes:  utils.StringPtr(req.Notes),
		Kind:   notify.KindBookingStatusChanged,
	}
	if frees {
		change.Mutate = func(b *entity.Booking) { b.SlotID = nil }
	}

	updated, result, err := s.status.Apply(ctx, booking, to, change)
	if err != nil {
		return nil, err
	}

	if frees && oldSlotID != nil {
		s.releaseSlot(ctx, *oldSlotID, "booking "+string(to))
	}

	s.log.Info("Booking status changed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(to)),
		zap.String("actor_role", string(actor.Role)),
	)

	resp := response.BookingToResponse(updated)
	resp.Warning = result.Warning
	return resp, nil
}

func (s *bookingService) RecordPayment(ctx context.Context, actor Actor, bookingID string, req *request.RecordPaymentRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}

	booking, err := s.loadBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.PaymentStatus == entity.PaymentStatusRefundPending || booking.PaymentStatus == entity.PaymentStatusRefunded {
		return nil, apperror.InvalidTransition(fmt.Sprintf("payment is already %s", booking.PaymentStatus))
	}

	expect := repository.StateOf(booking)
	booking.PaymentStatus = entity.PaymentStatus(req.Status)
	if ref := utils.StringPtr(strings.TrimSpace(req.Reference)); ref != nil {
		booking.PaymentReference = ref
	}
	booking.UpdatedAt = s.clock()

	if err := s.repo.Booking.Update(ctx, booking, expect); err != nil {
		return nil, updateError(err)
	}

	s.log.Info("Payment recorded",
		zap.String("booking_id", booking.ID.String()),
		zap.String("payment_status", req.Status),
	)
	return response.BookingToResponse(booking), nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}
	return response.BookingToResponse(booking), nil
}

func (s *bookingService) GetHistory(ctx context.Context, actor Actor, bookingID string) ([]response.StatusHistoryResponse, error) {
	booking, err := s.loadBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	entries, err := s.status.History(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	result := make([]response.StatusHistoryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, response.StatusHistoryToResponse(e))
	}
	return result, nil
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByCustomerID(ctx, actor.ID, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	total, err := s.repo.Booking.CountByCustomerID(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	data := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		data = append(data, *response.BookingToResponse(b))
	}
	return response.NewPaginatedResponse(data, req.Page, limit, total), nil
}

func (s *bookingService) MarkRefunded(ctx context.Context, bookingID, refundID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return apperror.ValidationField("booking_id", "Must be a valid UUID")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if booking == nil {
		return apperror.NotFound("booking", bookingID)
	}
	if booking.PaymentStatus != entity.PaymentStatusRefundPending {
		s.log.Info("Refund already settled",
			zap.String("booking_id", bookingID),
			zap.String("payment_status", string(booking.PaymentStatus)),
		)
		return nil
	}

	expect := repository.StateOf(booking)
	booking.PaymentStatus = entity.PaymentStatusRefunded
	booking.UpdatedAt = s.clock()
	if err := s.repo.Booking.Update(ctx, booking, expect); err != nil {
		return updateError(err)
	}

	s.log.Info("Booking refunded",
		zap.String("booking_id", bookingID),
		zap.String("refund_id", refundID),
		zap.Float64("amount", booking.RefundAmount),
	)
	return nil
}

// loadBooking accepts the id or the BK- reference and hides bookings the
// actor may not see behind NOT_FOUND.
func (s *bookingService) loadBooking(ctx context.Context, actor Actor, bookingID string) (*entity.Booking, error) {
	var (
		booking *entity.Booking
		err     error
	)
	if id, parseErr := uuid.Parse(bookingID); parseErr == nil {
		booking, err = s.repo.Booking.FindByID(ctx, id)
	} else if strings.HasPrefix(bookingID, "BK-") {
		booking, err = s.repo.Booking.FindByReference(ctx, bookingID)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if booking == nil || !actor.canAccess(booking) {
		return nil, apperror.NotFound("booking", bookingID)
	}
	return booking, nil
}

// insertBooking draws a fresh reference when the generated one is taken.
func (s *bookingService) insertBooking(ctx context.Context, booking *entity.Booking, now time.Time) error {
	var err error
	for attempt := 1; attempt <= referenceAttempts; attempt++ {
		err = s.repo.Booking.Create(ctx, booking)
		if !errors.Is(err, repository.ErrDuplicateReference) {
			return err
		}
		s.log.Warn("Booking reference collision",
			zap.String("reference", booking.Reference),
			zap.Int("attempt", attempt),
		)
		booking.Reference = s.newReference(now)
	}
	return err
}

// updateError reports a lost guarded write as a conflict the caller can retry
// after reloading the booking.
func updateError(err error) error {
	if errors.Is(err, repository.ErrBookingChanged) {
		return apperror.InvalidTransition("booking was changed by another request, reload it and try again")
	}
	return apperror.Internal(err)
}

func (s *bookingService) releaseSlot(ctx context.Context, slotID uuid.UUID, why string) {
	if err := s.slots.Release(ctx, slotID); err != nil {
		s.log.Error("Failed to release slot",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
			zap.String("reason", why),
		)
	}
}

func (s *bookingService) resolveCustomer(ctx context.Context, actor Actor, in request.CustomerInput) (*entity.Customer, error) {
	var (
		customer *entity.Customer
		err      error
	)

	// A customer booking for themselves is identified by their token.
	if actor.Role == entity.RoleCustomer && actor.ID != uuid.Nil {
		customer, err = s.repo.Customer.FindByID(ctx, actor.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
	}
	if customer == nil {
		customer, err = s.repo.Customer.FindByEmail(ctx, in.Email)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if customer != nil && actor.Role == entity.RoleCustomer && customer.ID != actor.ID {
			return nil, apperror.ValidationField("customer.email", "Email is registered to another account")
		}
	}

	now := s.clock()
	if customer != nil {
		if s.contactChanged(customer, in) {
			customer.Phone = utils.StringPtr(in.Phone)
			customer.DeviceToken = utils.StringPtr(in.DeviceToken)
			customer.UpdatedAt = now
			if err := s.repo.Customer.UpdateContact(ctx, customer); err != nil {
				s.log.Warn("Customer contact not refreshed", zap.Error(err), zap.String("customer_id", customer.ID.String()))
			}
		}
		return customer, nil
	}

	id := uuid.New()
	if actor.Role == entity.RoleCustomer && actor.ID != uuid.Nil {
		id = actor.ID
	}
	customer = &entity.Customer{
		Base: entity.Base{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:       utils.StringPtr(in.Phone),
		DeviceToken: utils.StringPtr(in.DeviceToken),
	}
	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		return nil, apperror.Internal(err)
	}
	return customer, nil
}

func (s *bookingService) contactChanged(c *entity.Customer, in request.CustomerInput) bool {
	return (in.Phone != "" && in.Phone != utils.StringValue(c.Phone)) ||
		(in.DeviceToken != "" && in.DeviceToken != utils.StringValue(c.DeviceToken))
}

func (s *bookingService) resolveVehicle(ctx context.Context, customerID uuid.UUID, in request.VehicleInput) (*entity.Vehicle, error) {
	plate := strings.ToUpper(strings.TrimSpace(in.LicensePlate))

	vehicle, err := s.repo.Vehicle.FindByPlate(ctx, customerID, plate)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if vehicle != nil {
		return vehicle, nil
	}

	now := s.clock()
	vehicle = &entity.Vehicle{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID:   customerID,
		Make:         strings.TrimSpace(in.Make),
		Model:        strings.TrimSpace(in.Model),
		Year:         in.Year,
		Size:         entity.VehicleSize(in.Size),
		Color:        utils.StringPtr(in.Color),
		LicensePlate: plate,
	}
	if err := s.repo.Vehicle.Create(ctx, vehicle); err != nil {
		return nil, apperror.Internal(err)
	}
	return vehicle, nil
}

func (s *bookingService) resolveAddress(ctx context.Context, customerID uuid.UUID, in request.AddressInput) (*entity.Address, error) {
	street := strings.TrimSpace(in.Street)

	address, err := s.repo.Address.Find(ctx, customerID, street, in.PostalCode)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if address != nil {
		return address, nil
	}

	now := s.clock()
	address = &entity.Address{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID: customerID,
		Street:     street,
		City:       strings.TrimSpace(in.City),
		State:      strings.TrimSpace(in.State),
		PostalCode: in.PostalCode,
	}
	if err := s.repo.Address.Create(ctx, address); err != nil {
		return nil, apperror.Internal(err)
	}
	return address, nil
}
