package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/internal/data/repository"
	"github.com/SW-Wanted/riding/internal/dto/response"
	"github.com/SW-Wanted/riding/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService answers the read-side questions the booking flow and
// the student dashboard depend on: how many seats remain and whether the
// student already holds a seat.
type AvailabilityService interface {
	GetAvailability(ctx context.Context, studentID uuid.UUID, scheduleID string, date string) (*response.AvailabilityResponse, error)
	RemainingCapacity(ctx context.Context, schedule *entity.Schedule, date time.Time) (int, error)
	HasActiveBooking(ctx context.Context, studentID, scheduleID uuid.UUID, date time.Time) (bool, error)
}

type availabilityService struct {
	repo  *repository.Repository
	cache AvailabilityCache
	log   *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, cache AvailabilityCache, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:  repo,
		cache: cache,
		log:   log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) GetAvailability(ctx context.Context, studentID uuid.UUID, scheduleIDStr string, dateStr string) (*response.AvailabilityResponse, error) {
	scheduleID, err := uuid.Parse(scheduleIDStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid schedule ID %s", ErrValidation, scheduleIDStr)
	}

	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %s", ErrValidation, dateStr)
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, storeErr(err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %s: %w", scheduleIDStr, ErrNotFound)
	}

	remaining, err := s.RemainingCapacity(ctx, schedule, date)
	if err != nil {
		return nil, err
	}

	booked, err := s.HasActiveBooking(ctx, studentID, scheduleID, date)
	if err != nil {
		return nil, err
	}

	return &response.AvailabilityResponse{
		ScheduleID:        scheduleIDStr,
		Date:              date.Format(utils.DateLayout),
		RemainingCapacity: remaining,
		HasActiveBooking:  booked,
	}, nil
}

// RemainingCapacity returns capacity minus active bookings, never negative.
// A negative raw value means the capacity guard was bypassed somewhere, for
// example by an admin shrinking a schedule that already sold out, so it is
// logged at error level for operators.
func (s *availabilityService) RemainingCapacity(ctx context.Context, schedule *entity.Schedule, date time.Time) (int, error) {
	active, err := s.activeCount(ctx, schedule.ID, date)
	if err != nil {
		return 0, storeErr(err)
	}

	remaining := schedule.Capacity - active
	if remaining < 0 {
		s.log.Error("Active bookings exceed schedule capacity",
			zap.String("schedule_id", schedule.ID.String()),
			zap.Time("booking_date", date),
			zap.Int("capacity", schedule.Capacity),
			zap.Int("active_bookings", active),
		)
		remaining = 0
	}

	return remaining, nil
}

func (s *availabilityService) HasActiveBooking(ctx context.Context, studentID, scheduleID uuid.UUID, date time.Time) (bool, error) {
	booked, err := s.repo.Booking.HasActiveBooking(ctx, studentID, scheduleID, date)
	if err != nil {
		return false, storeErr(err)
	}
	return booked, nil
}

// activeCount reads through the cache. Cache failures degrade to a direct
// count, never to an error.
func (s *availabilityService) activeCount(ctx context.Context, scheduleID uuid.UUID, date time.Time) (int, error) {
	dateKey := date.Format(utils.DateLayout)

	count, hit, err := s.cache.GetActiveCount(ctx, scheduleID.String(), dateKey)
	if err != nil {
		s.log.Warn("Availability cache read failed",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
		)
	}
	if hit {
		return count, nil
	}

	count, err = s.repo.Booking.CountActive(ctx, scheduleID, date)
	if err != nil {
		return 0, err
	}

	if err := s.cache.SetActiveCount(ctx, scheduleID.String(), dateKey, count); err != nil {
		s.log.Warn("Availability cache write failed",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
		)
	}

	return count, nil
}
