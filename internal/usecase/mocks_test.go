package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/internal/data/repository"

	"github.com/google/uuid"
)

// ──────────────────────────────────────────────
// In-memory repository mocks
// ──────────────────────────────────────────────

type mockUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
	err   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (m *mockUserRepo) AddUser(user *entity.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role entity.UserRole) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, user := range m.users {
		if user.Role == role && user.IsActive {
			count++
		}
	}
	return count, nil
}

type mockUniversityRepo struct {
	mu           sync.Mutex
	universities map[uuid.UUID]*entity.University
}

func newMockUniversityRepo() *mockUniversityRepo {
	return &mockUniversityRepo{universities: make(map[uuid.UUID]*entity.University)}
}

func (m *mockUniversityRepo) AddUniversity(u *entity.University) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.universities[u.ID] = u
}

func (m *mockUniversityRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.University, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.universities[id], nil
}

func (m *mockUniversityRepo) FindAllActive(ctx context.Context) ([]*entity.University, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.University
	for _, u := range m.universities {
		if u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

type mockRouteRepo struct {
	mu     sync.Mutex
	routes map[uuid.UUID]*entity.Route
}

func newMockRouteRepo() *mockRouteRepo {
	return &mockRouteRepo{routes: make(map[uuid.UUID]*entity.Route)}
}

func (m *mockRouteRepo) AddRoute(route *entity.Route) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[route.ID] = route
}

func (m *mockRouteRepo) Create(ctx context.Context, route *entity.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[route.ID] = route
	return nil
}

func (m *mockRouteRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.routes[id], nil
}

func (m *mockRouteRepo) FindAll(ctx context.Context) ([]*entity.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Route
	for _, route := range m.routes {
		out = append(out, route)
	}
	return out, nil
}

type mockScheduleRepo struct {
	mu        sync.Mutex
	schedules map[uuid.UUID]*entity.Schedule
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[uuid.UUID]*entity.Schedule)}
}

func (m *mockScheduleRepo) AddSchedule(schedule *entity.Schedule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[schedule.ID] = schedule
}

func (m *mockScheduleRepo) Create(ctx context.Context, schedule *entity.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[schedule.ID] = schedule
	return nil
}

func (m *mockScheduleRepo) Update(ctx context.Context, schedule *entity.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.schedules[schedule.ID]; !ok {
		return fmt.Errorf("update schedule: %w", repository.ErrNotFound)
	}
	m.schedules[schedule.ID] = schedule
	return nil
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedules[id], nil
}

func (m *mockScheduleRepo) FindAll(ctx context.Context) ([]*entity.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Schedule
	for _, schedule := range m.schedules {
		out = append(out, schedule)
	}
	return out, nil
}

func (m *mockScheduleRepo) FindActiveByUniversity(ctx context.Context, universityID uuid.UUID) ([]*entity.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Schedule
	for _, schedule := range m.schedules {
		if schedule.UniversityID == universityID && schedule.Active {
			out = append(out, schedule)
		}
	}
	return out, nil
}

type mockVehicleRepo struct {
	mu       sync.Mutex
	vehicles []*entity.Vehicle
}

func newMockVehicleRepo() *mockVehicleRepo { return &mockVehicleRepo{} }

func (m *mockVehicleRepo) AddVehicle(vehicle *entity.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles = append(m.vehicles, vehicle)
}

func (m *mockVehicleRepo) FindAll(ctx context.Context) ([]*entity.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.Vehicle(nil), m.vehicles...), nil
}

func (m *mockVehicleRepo) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.vehicles)), nil
}

func (m *mockVehicleRepo) CountActive(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, vehicle := range m.vehicles {
		if vehicle.Active {
			count++
		}
	}
	return count, nil
}

// mockBookingRepo reproduces the ledger invariants: one live booking per
// (student, schedule, date) and never more active bookings than the schedule
// capacity. CreateIfAvailable runs under one lock, matching the row-lock
// transaction of the real store.
type mockBookingRepo struct {
	mu         sync.Mutex
	bookings   map[uuid.UUID]*entity.Booking
	capacities map[uuid.UUID]int
	createErr  error

	CreateCalls int
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{
		bookings:   make(map[uuid.UUID]*entity.Booking),
		capacities: make(map[uuid.UUID]int),
	}
}

func (m *mockBookingRepo) SetCapacity(scheduleID uuid.UUID, capacity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.capacities[scheduleID] = capacity
}

func (m *mockBookingRepo) AddBooking(booking *entity.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *mockBookingRepo) GetBooking(id uuid.UUID) *entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id]
}

func (m *mockBookingRepo) activeCountLocked(scheduleID uuid.UUID, date time.Time) int {
	count := 0
	for _, b := range m.bookings {
		if b.ScheduleID == scheduleID && b.BookingDate.Equal(date) && b.IsActive() {
			count++
		}
	}
	return count
}

func (m *mockBookingRepo) CreateIfAvailable(ctx context.Context, booking *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++

	if m.createErr != nil {
		return m.createErr
	}

	capacity, ok := m.capacities[booking.ScheduleID]
	if !ok {
		return fmt.Errorf("create booking: %w", repository.ErrNotFound)
	}

	for _, b := range m.bookings {
		if b.StudentID == booking.StudentID && b.ScheduleID == booking.ScheduleID &&
			b.BookingDate.Equal(booking.BookingDate) && b.Status != entity.BookingStatusCancelled {
			return fmt.Errorf("create booking: %w", repository.ErrDuplicate)
		}
	}

	if m.activeCountLocked(booking.ScheduleID, booking.BookingDate) >= capacity {
		return fmt.Errorf("create booking: %w", repository.ErrCapacityExceeded)
	}

	m.bookings[booking.ID] = booking
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id], nil
}

func (m *mockBookingRepo) FindByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Booking
	for _, b := range m.bookings {
		if b.StudentID == studentID {
			out = append(out, b)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockBookingRepo) CountByStudent(ctx context.Context, studentID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, b := range m.bookings {
		if b.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

func (m *mockBookingRepo) FindForDate(ctx context.Context, scheduleID *uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Booking
	for _, b := range m.bookings {
		if !b.BookingDate.Equal(date) || !b.IsActive() {
			continue
		}
		if scheduleID != nil && b.ScheduleID != *scheduleID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *mockBookingRepo) CountActive(ctx context.Context, scheduleID uuid.UUID, date time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeCountLocked(scheduleID, date), nil
}

func (m *mockBookingRepo) HasActiveBooking(ctx context.Context, studentID, scheduleID uuid.UUID, date time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.StudentID == studentID && b.ScheduleID == scheduleID &&
			b.BookingDate.Equal(date) && b.Status != entity.BookingStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[bookingID]
	if !ok {
		return fmt.Errorf("update booking status: %w", repository.ErrNotFound)
	}
	booking.Status = status
	return nil
}

func (m *mockBookingRepo) SetCheckedIn(ctx context.Context, bookingID uuid.UUID, checkInTime time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[bookingID]
	if !ok {
		return fmt.Errorf("check in booking: %w", repository.ErrNotFound)
	}
	booking.Status = entity.BookingStatusConfirmed
	booking.CheckInTime = &checkInTime
	return nil
}

func (m *mockBookingRepo) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, b := range m.bookings {
		if b.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockBookingRepo) StatsForDate(ctx context.Context, date time.Time) (map[entity.BookingStatus]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := make(map[entity.BookingStatus]int64)
	for _, b := range m.bookings {
		if b.BookingDate.Equal(date) {
			stats[b.Status]++
		}
	}
	return stats, nil
}

type mockPaymentRepo struct {
	mu       sync.Mutex
	payments []*entity.Payment
}

func newMockPaymentRepo() *mockPaymentRepo { return &mockPaymentRepo{} }

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, payment)
	return nil
}

func (m *mockPaymentRepo) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Payment
	for _, p := range m.payments {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPaymentRepo) HasActiveCovering(ctx context.Context, studentID uuid.UUID, date time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.StudentID == studentID && p.Status == "completed" &&
			!date.Before(p.StartDate) && !date.After(p.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

type mockSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Token.String()] = session
	return nil
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[token]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (m *mockSessionRepo) Revoke(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[token]; ok && session.RevokedAt == nil {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (m *mockSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, session := range m.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (m *mockSessionRepo) CleanExpiredSessions(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for token, session := range m.sessions {
		if session.ExpiresAt.Before(time.Now()) || session.RevokedAt != nil {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// ──────────────────────────────────────────────
// Availability cache mock
// ──────────────────────────────────────────────

type mockCache struct {
	mu     sync.Mutex
	counts map[string]int

	Hits          int
	Invalidations int
}

func newMockCache() *mockCache {
	return &mockCache{counts: make(map[string]int)}
}

func cacheKey(scheduleID, date string) string { return scheduleID + ":" + date }

func (m *mockCache) GetActiveCount(ctx context.Context, scheduleID, date string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count, ok := m.counts[cacheKey(scheduleID, date)]
	if ok {
		m.Hits++
	}
	return count, ok, nil
}

func (m *mockCache) SetActiveCount(ctx context.Context, scheduleID, date string, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[cacheKey(scheduleID, date)] = count
	return nil
}

func (m *mockCache) Invalidate(ctx context.Context, scheduleID, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.counts, cacheKey(scheduleID, date))
	m.Invalidations++
	return nil
}

func (m *mockCache) InvalidateSchedule(ctx context.Context, scheduleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.counts {
		if len(key) >= len(scheduleID) && key[:len(scheduleID)] == scheduleID {
			delete(m.counts, key)
		}
	}
	m.Invalidations++
	return nil
}

// ──────────────────────────────────────────────
// Fixture helpers
// ──────────────────────────────────────────────

type testRepos struct {
	users        *mockUserRepo
	universities *mockUniversityRepo
	routes       *mockRouteRepo
	schedules    *mockScheduleRepo
	vehicles     *mockVehicleRepo
	bookings     *mockBookingRepo
	payments     *mockPaymentRepo
	sessions     *mockSessionRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	mocks := &testRepos{
		users:        newMockUserRepo(),
		universities: newMockUniversityRepo(),
		routes:       newMockRouteRepo(),
		schedules:    newMockScheduleRepo(),
		vehicles:     newMockVehicleRepo(),
		bookings:     newMockBookingRepo(),
		payments:     newMockPaymentRepo(),
		sessions:     newMockSessionRepo(),
	}

	repo := &repository.Repository{
		User:       mocks.users,
		University: mocks.universities,
		Route:      mocks.routes,
		Schedule:   mocks.schedules,
		Vehicle:    mocks.vehicles,
		Booking:    mocks.bookings,
		Payment:    mocks.payments,
		Session:    mocks.sessions,
	}

	return repo, mocks
}

var allWeekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func testSchedule(capacity int) *entity.Schedule {
	return &entity.Schedule{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UniversityID:  uuid.New(),
		RouteID:       uuid.New(),
		Shift:         entity.ShiftMorningGo,
		DepartureTime: "06:30",
		DaysOfWeek:    allWeekdays,
		Capacity:      capacity,
		Active:        true,
	}
}
