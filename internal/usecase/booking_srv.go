package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/internal/data/repository"
	"github.com/SW-Wanted/riding/internal/dto/request"
	"github.com/SW-Wanted/riding/internal/dto/response"
	"github.com/SW-Wanted/riding/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService is the booking ledger: it owns every booking lifecycle
// transition. No other service mutates booking status.
type BookingService interface {
	CreateBooking(ctx context.Context, studentID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string, requesterID uuid.UUID, requesterRole entity.UserRole) error
	CheckIn(ctx context.Context, bookingID string, driverID uuid.UUID) error
	Complete(ctx context.Context, bookingID string, driverID uuid.UUID) error
	ListForDate(ctx context.Context, scheduleID string, date string) ([]response.ManifestEntry, error)
	GetStudentBookings(ctx context.Context, studentID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo  *repository.Repository
	cache AvailabilityCache
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, cache AvailabilityCache, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		cache: cache,
		log:   log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, studentID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid schedule ID %s", ErrValidation, req.ScheduleID)
	}

	date, err := utils.ParseDate(req.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking date %s", ErrValidation, req.BookingDate)
	}
	if date.Before(utils.Today()) {
		return nil, fmt.Errorf("%w: cannot book for a past date", ErrValidation)
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, storeErr(err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %s: %w", req.ScheduleID, ErrNotFound)
	}
	if !schedule.Active {
		return nil, fmt.Errorf("schedule %s: %w", req.ScheduleID, ErrScheduleInactive)
	}
	if !schedule.RunsOn(date) {
		return nil, fmt.Errorf("schedule %s does not run on %s: %w",
			req.ScheduleID, date.Weekday(), ErrScheduleInactive)
	}

	// A pass covering the date pre-pays the booking.
	paymentStatus := entity.PaymentStatusPending
	covered, err := s.repo.Payment.HasActiveCovering(ctx, studentID, date)
	if err != nil {
		return nil, storeErr(err)
	}
	if covered {
		paymentStatus = entity.PaymentStatusPaid
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		StudentID:     studentID,
		ScheduleID:    scheduleID,
		BookingDate:   date,
		Status:        entity.BookingStatusPending,
		PaymentStatus: paymentStatus,
	}

	if err := s.repo.Booking.CreateIfAvailable(ctx, booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("already booked for %s: %w", req.BookingDate, ErrDuplicateBooking)
		case errors.Is(err, repository.ErrCapacityExceeded):
			return nil, fmt.Errorf("schedule %s is full on %s: %w", req.ScheduleID, req.BookingDate, ErrCapacityExceeded)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("schedule %s: %w", req.ScheduleID, ErrNotFound)
		default:
			s.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("student_id", studentID.String()),
				zap.String("schedule_id", req.ScheduleID),
			)
			return nil, storeErr(err)
		}
	}

	s.invalidateAvailability(ctx, scheduleID, date)

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("student_id", studentID.String()),
		zap.String("schedule_id", req.ScheduleID),
		zap.String("booking_date", req.BookingDate),
		zap.String("payment_status", string(paymentStatus)),
	)

	resp := s.decorateBooking(ctx, booking, schedule)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, requesterID uuid.UUID, requesterRole entity.UserRole) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: invalid booking ID %s", ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	// Only the owning student may cancel; admins have an override.
	if requesterRole != entity.RoleAdmin && booking.StudentID != requesterID {
		return fmt.Errorf("booking %s does not belong to requester: %w", bookingID, ErrForbidden)
	}

	if !booking.Status.CanTransitionTo(entity.BookingStatusCancelled) {
		return fmt.Errorf("cannot cancel %s booking: %w", booking.Status, ErrInvalidTransition)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
		}
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return storeErr(err)
	}

	s.invalidateAvailability(ctx, booking.ScheduleID, booking.BookingDate)

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("requester_id", requesterID.String()),
		zap.String("requester_role", string(requesterRole)),
	)

	return nil
}

func (s *bookingService) CheckIn(ctx context.Context, bookingID string, driverID uuid.UUID) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: invalid booking ID %s", ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	// A repeated check-in is rejected, not silently re-applied.
	if !booking.Status.CanTransitionTo(entity.BookingStatusConfirmed) {
		return fmt.Errorf("cannot check in %s booking: %w", booking.Status, ErrInvalidTransition)
	}

	if err := s.repo.Booking.SetCheckedIn(ctx, booking.ID, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
		}
		s.log.Error("Failed to check in booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return storeErr(err)
	}

	s.log.Info("Student checked in",
		zap.String("booking_id", bookingID),
		zap.String("driver_id", driverID.String()),
	)

	return nil
}

func (s *bookingService) Complete(ctx context.Context, bookingID string, driverID uuid.UUID) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: invalid booking ID %s", ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	if !booking.Status.CanTransitionTo(entity.BookingStatusCompleted) {
		return fmt.Errorf("cannot complete %s booking: %w", booking.Status, ErrInvalidTransition)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCompleted); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
		}
		s.log.Error("Failed to complete booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return storeErr(err)
	}

	// Completed bookings no longer hold a seat for availability purposes.
	s.invalidateAvailability(ctx, booking.ScheduleID, booking.BookingDate)

	s.log.Info("Booking completed",
		zap.String("booking_id", bookingID),
		zap.String("driver_id", driverID.String()),
	)

	return nil
}

func (s *bookingService) ListForDate(ctx context.Context, scheduleID string, dateStr string) ([]response.ManifestEntry, error) {
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %s", ErrValidation, dateStr)
	}

	var scheduleFilter *uuid.UUID
	if scheduleID != "" {
		id, err := uuid.Parse(scheduleID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid schedule ID %s", ErrValidation, scheduleID)
		}
		scheduleFilter = &id
	}

	bookings, err := s.repo.Booking.FindForDate(ctx, scheduleFilter, date)
	if err != nil {
		s.log.Error("Failed to list bookings for date",
			zap.Error(err),
			zap.String("date", dateStr),
		)
		return nil, storeErr(err)
	}

	entries := make([]response.ManifestEntry, 0, len(bookings))
	for _, booking := range bookings {
		schedule, _ := s.repo.Schedule.FindByID(ctx, booking.ScheduleID)

		entry := response.ManifestEntry{
			BookingResponse: s.decorateBooking(ctx, booking, schedule),
		}

		student, _ := s.repo.User.FindByID(ctx, booking.StudentID)
		if student != nil {
			entry.StudentName = student.FullName
			entry.StudentNumber = student.StudentNumber
		}

		entries = append(entries, entry)
	}

	s.log.Info("Bookings listed for date",
		zap.String("date", dateStr),
		zap.Int("count", len(entries)),
	)

	return entries, nil
}

func (s *bookingService) GetStudentBookings(ctx context.Context, studentID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByStudent(ctx, studentID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get student bookings",
			zap.Error(err),
			zap.String("student_id", studentID.String()),
		)
		return nil, storeErr(err)
	}

	total, err := s.repo.Booking.CountByStudent(ctx, studentID)
	if err != nil {
		return nil, storeErr(err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		schedule, _ := s.repo.Schedule.FindByID(ctx, booking.ScheduleID)
		bookingResponses[i] = s.decorateBooking(ctx, booking, schedule)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

// invalidateAvailability is best effort: a missed invalidation only extends
// staleness until the cache TTL expires.
func (s *bookingService) invalidateAvailability(ctx context.Context, scheduleID uuid.UUID, date time.Time) {
	if err := s.cache.Invalidate(ctx, scheduleID.String(), date.Format(utils.DateLayout)); err != nil {
		s.log.Warn("Failed to invalidate availability cache",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
		)
	}
}

func (s *bookingService) decorateBooking(ctx context.Context, booking *entity.Booking, schedule *entity.Schedule) response.BookingResponse {
	resp := response.BookingToResponse(booking)

	if schedule != nil {
		resp.Shift = string(schedule.Shift)
		resp.DepartureTime = schedule.DepartureTime

		route, _ := s.repo.Route.FindByID(ctx, schedule.RouteID)
		if route != nil {
			resp.RouteName = route.Name
		}
	}

	return resp
}
