package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"mobile-booking/internal/data/entity"
	"mobile-booking/internal/data/repository"
	"mobile-booking/internal/domain"
	"mobile-booking/pkg/geocode"
	"mobile-booking/pkg/notify"
	"mobile-booking/pkg/payment"

	"github.com/google/uuid"
)

var errStore = errors.New("store unavailable")

// memStore backs every repository interface with maps guarded by one mutex,
// so Claim is exactly as atomic as the conditional UPDATE it stands in for.
type memStore struct {
	mu        sync.Mutex
	customers map[uuid.UUID]entity.Customer
	vehicles  map[uuid.UUID]entity.Vehicle
	addresses map[uuid.UUID]entity.Address
	services  map[uuid.UUID]entity.Service
	slots     map[uuid.UUID]entity.TimeSlot
	bookings  map[uuid.UUID]entity.Booking
	history   []entity.StatusHistoryEntry

	failBookingCreate error
	failBookingUpdate error
	failHistoryAppend error
	failRelease       map[uuid.UUID]error

	// afterBookingFind runs outside the lock once a booking has been read.
	afterBookingFind func()
}

func newMemStore() *memStore {
	return &memStore{
		customers:   map[uuid.UUID]entity.Customer{},
		vehicles:    map[uuid.UUID]entity.Vehicle{},
		addresses:   map[uuid.UUID]entity.Address{},
		services:    map[uuid.UUID]entity.Service{},
		slots:       map[uuid.UUID]entity.TimeSlot{},
		bookings:    map[uuid.UUID]entity.Booking{},
		failRelease: map[uuid.UUID]error{},
	}
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Customer:      memCustomers{m},
		Vehicle:       memVehicles{m},
		Address:       memAddresses{m},
		Service:       memServices{m},
		Slot:          memSlots{m},
		Booking:       memBookings{m},
		StatusHistory: memHistory{m},
	}
}

func (m *memStore) slot(id uuid.UUID) entity.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[id]
}

func (m *memStore) booking(id uuid.UUID) (entity.Booking, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	return b, ok
}

func (m *memStore) bookingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

func (m *memStore) historyFor(id uuid.UUID) []entity.StatusHistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.StatusHistoryEntry
	for _, e := range m.history {
		if e.BookingID == id {
			out = append(out, e)
		}
	}
	return out
}

type memCustomers struct{ m *memStore }

func (r memCustomers) Create(_ context.Context, c *entity.Customer) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.customers[c.ID] = *c
	return nil
}

func (r memCustomers) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if c, ok := r.m.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r memCustomers) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.customers {
		if strings.EqualFold(c.Email, email) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r memCustomers) UpdateContact(_ context.Context, c *entity.Customer) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.customers[c.ID] = *c
	return nil
}

type memVehicles struct{ m *memStore }

func (r memVehicles) Create(_ context.Context, v *entity.Vehicle) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.vehicles[v.ID] = *v
	return nil
}

func (r memVehicles) FindByPlate(_ context.Context, customerID uuid.UUID, plate string) (*entity.Vehicle, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, v := range r.m.vehicles {
		if v.CustomerID == customerID && strings.EqualFold(v.LicensePlate, plate) {
			return &v, nil
		}
	}
	return nil, nil
}

type memAddresses struct{ m *memStore }

func (r memAddresses) Create(_ context.Context, a *entity.Address) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.addresses[a.ID] = *a
	return nil
}

func (r memAddresses) Find(_ context.Context, customerID uuid.UUID, street, postalCode string) (*entity.Address, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.addresses {
		if a.CustomerID == customerID && strings.EqualFold(a.Street, street) && a.PostalCode == postalCode {
			return &a, nil
		}
	}
	return nil, nil
}

type memServices struct{ m *memStore }

func (r memServices) FindByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if s, ok := r.m.services[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r memServices) FindActive(_ context.Context) ([]*entity.Service, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Service
	for _, s := range r.m.services {
		if s.IsActive {
			s := s
			out = append(out, &s)
		}
	}
	return out, nil
}

type memSlots struct{ m *memStore }

func (r memSlots) Create(_ context.Context, s *entity.TimeSlot) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.slots[s.ID] = *s
	return nil
}

func (r memSlots) FindByID(_ context.Context, id uuid.UUID) (*entity.TimeSlot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if s, ok := r.m.slots[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r memSlots) FindBySchedule(_ context.Context, date time.Time, start string) (*entity.TimeSlot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	day := date.Format("2006-01-02")
	for _, s := range r.m.slots {
		if s.SlotDate.Format("2006-01-02") == day && s.StartTime == start {
			return &s, nil
		}
	}
	return nil, nil
}

func (r memSlots) FindAvailableByDate(_ context.Context, date time.Time) ([]*entity.TimeSlot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	day := date.Format("2006-01-02")
	var out []*entity.TimeSlot
	for _, s := range r.m.slots {
		if s.IsAvailable && s.SlotDate.Format("2006-01-02") == day {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (r memSlots) Claim(_ context.Context, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.slots[id]
	if !ok || !s.IsAvailable {
		return false, nil
	}
	s.IsAvailable = false
	r.m.slots[id] = s
	return true, nil
}

func (r memSlots) Release(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failRelease[id]; err != nil {
		return err
	}
	s, ok := r.m.slots[id]
	if !ok {
		return errors.New("slot not found")
	}
	s.IsAvailable = true
	r.m.slots[id] = s
	return nil
}

type memBookings struct{ m *memStore }

func (r memBookings) Create(_ context.Context, b *entity.Booking) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failBookingCreate != nil {
		return r.m.failBookingCreate
	}
	for _, existing := range r.m.bookings {
		if existing.Reference == b.Reference {
			return repository.ErrDuplicateReference
		}
	}
	r.m.bookings[b.ID] = *b
	return nil
}

func (r memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.m.mu.Lock()
	b, ok := r.m.bookings[id]
	hook := r.m.afterBookingFind
	r.m.mu.Unlock()

	if !ok {
		return nil, nil
	}
	if hook != nil {
		hook()
	}
	return &b, nil
}

func (r memBookings) FindByReference(_ context.Context, reference string) (*entity.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, b := range r.m.bookings {
		if b.Reference == reference {
			return &b, nil
		}
	}
	return nil, nil
}

func (r memBookings) FindByCustomerID(_ context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []*entity.Booking
	for _, b := range r.m.bookings {
		if b.CustomerID == customerID {
			b := b
			all = append(all, &b)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ScheduledStart.Before(all[j].ScheduledStart) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r memBookings) CountByCustomerID(_ context.Context, customerID uuid.UUID) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for _, b := range r.m.bookings {
		if b.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r memBookings) Update(_ context.Context, b *entity.Booking, expect repository.BookingState) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failBookingUpdate != nil {
		return r.m.failBookingUpdate
	}
	stored, ok := r.m.bookings[b.ID]
	if !ok || !sameState(repository.StateOf(&stored), expect) {
		return repository.ErrBookingChanged
	}
	r.m.bookings[b.ID] = *b
	return nil
}

func sameState(a, b repository.BookingState) bool {
	if a.Status != b.Status || a.PaymentStatus != b.PaymentStatus {
		return false
	}
	if a.SlotID == nil || b.SlotID == nil {
		return a.SlotID == nil && b.SlotID == nil
	}
	return *a.SlotID == *b.SlotID
}

func (r memBookings) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.bookings, id)
	return nil
}

type memHistory struct{ m *memStore }

func (r memHistory) Append(_ context.Context, e *entity.StatusHistoryEntry) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failHistoryAppend != nil {
		return r.m.failHistoryAppend
	}
	r.m.history = append(r.m.history, *e)
	return nil
}

func (r memHistory) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.StatusHistoryEntry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.StatusHistoryEntry
	for _, e := range r.m.history {
		if e.BookingID == bookingID {
			e := e
			out = append(out, &e)
		}
	}
	return out, nil
}

type fakeDispatcher struct {
	mu            sync.Mutex
	notifications []notify.Message
	refunds       []payment.RefundRequest
	notifyErr     error
	refundErr     error
}

func (d *fakeDispatcher) Notify(_ context.Context, msg notify.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifications = append(d.notifications, msg)
	return d.notifyErr
}

func (d *fakeDispatcher) Refund(_ context.Context, req payment.RefundRequest) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refunds = append(d.refunds, req)
	return d.refundErr
}

func (d *fakeDispatcher) sent() []notify.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]notify.Message(nil), d.notifications...)
}

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return p.err
}

type fixedDistance struct {
	estimate domain.DistanceEstimate
}

func (f fixedDistance) Estimate(context.Context, string) domain.DistanceEstimate {
	return f.estimate
}

type stubGeocoder struct {
	mu    sync.Mutex
	point geocode.Point
	err   error
	calls int
}

func (g *stubGeocoder) Lookup(context.Context, string) (geocode.Point, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.point, g.err
}
