package usecase

import (
	"context"

	"github.com/SW-Wanted/riding/internal/data/repository"
	"github.com/SW-Wanted/riding/pkg/utils"

	"go.uber.org/zap"
)

// AvailabilityCache is the seat-count cache the booking and schedule services
// invalidate and the availability service reads through. Keys are
// (scheduleID, date) pairs; values are active-booking counts.
type AvailabilityCache interface {
	GetActiveCount(ctx context.Context, scheduleID, date string) (int, bool, error)
	SetActiveCount(ctx context.Context, scheduleID, date string, count int) error
	Invalidate(ctx context.Context, scheduleID, date string) error
	InvalidateSchedule(ctx context.Context, scheduleID string) error
}

type Service struct {
	Auth         AuthService
	Schedule     ScheduleService
	Booking      BookingService
	Availability AvailabilityService
	Dashboard    DashboardService
	Payment      PaymentService
}

func NewService(repo *repository.Repository, cache AvailabilityCache, config *utils.Config, log *zap.Logger) *Service {
	availability := NewAvailabilityService(repo, cache, log)

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Schedule:     NewScheduleService(repo, cache, availability, log),
		Booking:      NewBookingService(repo, cache, log),
		Availability: availability,
		Dashboard:    NewDashboardService(repo, log),
		Payment:      NewPaymentService(repo, log),
	}
}
