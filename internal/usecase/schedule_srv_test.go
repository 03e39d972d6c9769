package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/internal/dto/request"
	"github.com/SW-Wanted/riding/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newScheduleFixture(t *testing.T) (ScheduleService, *testRepos, *mockCache) {
	t.Helper()

	repo, mocks := newTestRepos()
	cache := newMockCache()
	availability := NewAvailabilityService(repo, cache, zap.NewNop())
	svc := NewScheduleService(repo, cache, availability, zap.NewNop())

	return svc, mocks, cache
}

func TestListForStudent_DecoratesAvailability(t *testing.T) {
	t.Parallel()

	svc, mocks, _ := newScheduleFixture(t)

	universityID := uuid.New()
	student := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Email:        "aluno@metodista.ao",
		FullName:     "Test Student",
		Role:         entity.RoleStudent,
		UniversityID: &universityID,
		IsActive:     true,
	}
	mocks.users.AddUser(student)

	route := &entity.Route{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       "Campus Central",
		Active:     true,
	}
	mocks.routes.AddRoute(route)

	schedule := testSchedule(5)
	schedule.UniversityID = universityID
	schedule.RouteID = route.ID
	mocks.schedules.AddSchedule(schedule)

	// A schedule from another university must not leak in.
	foreign := testSchedule(5)
	mocks.schedules.AddSchedule(foreign)

	date := utils.Today().AddDate(0, 0, 1)
	mocks.bookings.AddBooking(seededBooking(student.ID, schedule, date, entity.BookingStatusPending))
	mocks.bookings.AddBooking(seededBooking(uuid.New(), schedule, date, entity.BookingStatusConfirmed))

	results, err := svc.ListForStudent(context.Background(), student.ID, date.Format(utils.DateLayout))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 schedule, got %d", len(results))
	}

	item := results[0]
	if item.RemainingCapacity != 3 {
		t.Errorf("expected 3 remaining seats, got %d", item.RemainingCapacity)
	}
	if !item.Booked {
		t.Error("expected the student's booking to be reflected")
	}
	if item.RouteName != route.Name {
		t.Errorf("expected route name %q, got %q", route.Name, item.RouteName)
	}
}

func TestListForStudent_SkipsNonRunningDays(t *testing.T) {
	t.Parallel()

	svc, mocks, _ := newScheduleFixture(t)

	universityID := uuid.New()
	student := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Email:        "aluno@metodista.ao",
		FullName:     "Test Student",
		Role:         entity.RoleStudent,
		UniversityID: &universityID,
		IsActive:     true,
	}
	mocks.users.AddUser(student)

	date := utils.Today().AddDate(0, 0, 1)

	schedule := testSchedule(5)
	schedule.UniversityID = universityID
	schedule.DaysOfWeek = nil // runs on no day
	mocks.schedules.AddSchedule(schedule)

	results, err := svc.ListForStudent(context.Background(), student.ID, date.Format(utils.DateLayout))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 0 {
		t.Fatalf("expected no schedules, got %d", len(results))
	}
}

func TestUpdateSchedule_InvalidatesCachedCounts(t *testing.T) {
	t.Parallel()

	svc, mocks, cache := newScheduleFixture(t)

	route := &entity.Route{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       "Campus Central",
		Active:     true,
	}
	mocks.routes.AddRoute(route)

	schedule := testSchedule(5)
	schedule.RouteID = route.ID
	mocks.schedules.AddSchedule(schedule)

	date := utils.Today().Format(utils.DateLayout)
	if err := cache.SetActiveCount(context.Background(), schedule.ID.String(), date, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := svc.UpdateSchedule(context.Background(), schedule.ID.String(), &request.UpdateScheduleRequest{
		RouteID:       route.ID.String(),
		Shift:         string(entity.ShiftMorningGo),
		DepartureTime: "06:45",
		DaysOfWeek:    allWeekdays,
		Capacity:      12,
		Active:        true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Capacity != 12 {
		t.Errorf("expected capacity 12, got %d", resp.Capacity)
	}
	if cache.Invalidations == 0 {
		t.Error("expected cached counts to be invalidated after update")
	}

	if _, hit, _ := cache.GetActiveCount(context.Background(), schedule.ID.String(), date); hit {
		t.Error("expected cached count to be gone")
	}
}

func TestListAll_IncludesInactiveSchedules(t *testing.T) {
	t.Parallel()

	svc, mocks, _ := newScheduleFixture(t)

	route := &entity.Route{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       "Campus Central",
		Active:     true,
	}
	mocks.routes.AddRoute(route)

	active := testSchedule(5)
	active.RouteID = route.ID
	mocks.schedules.AddSchedule(active)

	inactive := testSchedule(5)
	inactive.RouteID = route.ID
	inactive.Active = false
	mocks.schedules.AddSchedule(inactive)

	results, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(results))
	}
	for _, item := range results {
		if item.RouteName != route.Name {
			t.Errorf("expected route name %q, got %q", route.Name, item.RouteName)
		}
	}
}

func TestCreateSchedule_RequiresExistingRefs(t *testing.T) {
	t.Parallel()

	svc, mocks, _ := newScheduleFixture(t)

	university := &entity.University{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:        "Universidade Metodista",
		EmailDomain: "metodista.ao",
		Active:      true,
	}
	mocks.universities.AddUniversity(university)

	req := &request.CreateScheduleRequest{
		UniversityID:  university.ID.String(),
		RouteID:       uuid.New().String(), // missing route
		Shift:         string(entity.ShiftAfternoonGo),
		DepartureTime: "13:00",
		DaysOfWeek:    []string{"monday", "friday"},
		Capacity:      20,
	}

	if _, err := svc.CreateSchedule(context.Background(), req); err == nil {
		t.Fatal("expected error for missing route")
	}

	route := &entity.Route{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       "Campus Sul",
		Active:     true,
	}
	mocks.routes.AddRoute(route)
	req.RouteID = route.ID.String()

	resp, err := svc.CreateSchedule(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.Active {
		t.Error("expected new schedules to start active")
	}
	if resp.RouteName != route.Name {
		t.Errorf("expected route name %q, got %q", route.Name, resp.RouteName)
	}
}
