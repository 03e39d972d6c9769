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

type ScheduleService interface {
	// ListForStudent returns the student's university schedules that run on
	// the given date, decorated with remaining seats and the student's own
	// booking state.
	ListForStudent(ctx context.Context, studentID uuid.UUID, date string) ([]response.StudentScheduleResponse, error)

	GetSchedule(ctx context.Context, scheduleID string) (*response.ScheduleResponse, error)
	ListAll(ctx context.Context) ([]response.ScheduleResponse, error)
	CreateSchedule(ctx context.Context, req *request.CreateScheduleRequest) (*response.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, scheduleID string, req *request.UpdateScheduleRequest) (*response.ScheduleResponse, error)

	CreateRoute(ctx context.Context, req *request.CreateRouteRequest) (*response.RouteResponse, error)
	ListRoutes(ctx context.Context) ([]response.RouteResponse, error)
}

type scheduleService struct {
	repo         *repository.Repository
	cache        AvailabilityCache
	availability AvailabilityService
	log          *zap.Logger
}

func NewScheduleService(repo *repository.Repository, cache AvailabilityCache, availability AvailabilityService, log *zap.Logger) ScheduleService {
	return &scheduleService{
		repo:         repo,
		cache:        cache,
		availability: availability,
		log:          log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) ListForStudent(ctx context.Context, studentID uuid.UUID, dateStr string) ([]response.StudentScheduleResponse, error) {
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %s", ErrValidation, dateStr)
	}

	student, err := s.repo.User.FindByID(ctx, studentID)
	if err != nil {
		return nil, storeErr(err)
	}
	if student == nil || student.UniversityID == nil {
		return nil, fmt.Errorf("student %s has no university: %w", studentID.String(), ErrNotFound)
	}

	schedules, err := s.repo.Schedule.FindActiveByUniversity(ctx, *student.UniversityID)
	if err != nil {
		return nil, storeErr(err)
	}

	routeNames := make(map[uuid.UUID]string)

	results := make([]response.StudentScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		if !schedule.RunsOn(date) {
			continue
		}

		remaining, err := s.availability.RemainingCapacity(ctx, schedule, date)
		if err != nil {
			return nil, err
		}

		booked, err := s.availability.HasActiveBooking(ctx, studentID, schedule.ID, date)
		if err != nil {
			return nil, err
		}

		item := response.StudentScheduleResponse{
			ScheduleResponse:  response.ScheduleToResponse(schedule),
			Date:              date.Format(utils.DateLayout),
			RemainingCapacity: remaining,
			Booked:            booked,
		}

		name, ok := routeNames[schedule.RouteID]
		if !ok {
			route, err := s.repo.Route.FindByID(ctx, schedule.RouteID)
			if err == nil && route != nil {
				name = route.Name
			}
			routeNames[schedule.RouteID] = name
		}
		item.RouteName = name

		results = append(results, item)
	}

	s.log.Info("Schedules listed for student",
		zap.String("student_id", studentID.String()),
		zap.String("date", dateStr),
		zap.Int("count", len(results)),
	)

	return results, nil
}

func (s *scheduleService) GetSchedule(ctx context.Context, scheduleID string) (*response.ScheduleResponse, error) {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid schedule ID %s", ErrValidation, scheduleID)
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %s: %w", scheduleID, ErrNotFound)
	}

	resp := response.ScheduleToResponse(schedule)

	route, err := s.repo.Route.FindByID(ctx, schedule.RouteID)
	if err == nil && route != nil {
		resp.RouteName = route.Name
	}

	return &resp, nil
}

// ListAll returns every schedule, active or not, for the admin dashboard.
func (s *scheduleService) ListAll(ctx context.Context) ([]response.ScheduleResponse, error) {
	schedules, err := s.repo.Schedule.FindAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	routeNames := make(map[uuid.UUID]string)

	resp := make([]response.ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		item := response.ScheduleToResponse(schedule)

		name, ok := routeNames[schedule.RouteID]
		if !ok {
			route, err := s.repo.Route.FindByID(ctx, schedule.RouteID)
			if err == nil && route != nil {
				name = route.Name
			}
			routeNames[schedule.RouteID] = name
		}
		item.RouteName = name

		resp[i] = item
	}

	return resp, nil
}

func (s *scheduleService) CreateSchedule(ctx context.Context, req *request.CreateScheduleRequest) (*response.ScheduleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	universityID, err := uuid.Parse(req.UniversityID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid university ID %s", ErrValidation, req.UniversityID)
	}
	routeID, err := uuid.Parse(req.RouteID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid route ID %s", ErrValidation, req.RouteID)
	}

	university, err := s.repo.University.FindByID(ctx, universityID)
	if err != nil {
		return nil, storeErr(err)
	}
	if university == nil {
		return nil, fmt.Errorf("university %s: %w", req.UniversityID, ErrNotFound)
	}

	route, err := s.repo.Route.FindByID(ctx, routeID)
	if err != nil {
		return nil, storeErr(err)
	}
	if route == nil {
		return nil, fmt.Errorf("route %s: %w", req.RouteID, ErrNotFound)
	}

	schedule := &entity.Schedule{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UniversityID:  universityID,
		RouteID:       routeID,
		Shift:         entity.ShiftType(req.Shift),
		DepartureTime: req.DepartureTime,
		DaysOfWeek:    req.DaysOfWeek,
		Capacity:      req.Capacity,
		Active:        true,
	}

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.log.Error("Failed to create schedule", zap.Error(err))
		return nil, storeErr(err)
	}

	s.log.Info("Schedule created",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("shift", req.Shift),
		zap.String("departure_time", req.DepartureTime),
	)

	resp := response.ScheduleToResponse(schedule)
	resp.RouteName = route.Name
	return &resp, nil
}

func (s *scheduleService) UpdateSchedule(ctx context.Context, scheduleID string, req *request.UpdateScheduleRequest) (*response.ScheduleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid schedule ID %s", ErrValidation, scheduleID)
	}
	routeID, err := uuid.Parse(req.RouteID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid route ID %s", ErrValidation, req.RouteID)
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %s: %w", scheduleID, ErrNotFound)
	}

	schedule.RouteID = routeID
	schedule.Shift = entity.ShiftType(req.Shift)
	schedule.DepartureTime = req.DepartureTime
	schedule.DaysOfWeek = req.DaysOfWeek
	schedule.Capacity = req.Capacity
	schedule.Active = req.Active

	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("schedule %s: %w", scheduleID, ErrNotFound)
		}
		s.log.Error("Failed to update schedule",
			zap.Error(err),
			zap.String("schedule_id", scheduleID),
		)
		return nil, storeErr(err)
	}

	// Capacity or activity may have changed; drop every cached count for the
	// schedule so reads recompute against the new values.
	if err := s.cache.InvalidateSchedule(ctx, scheduleID); err != nil {
		s.log.Warn("Failed to invalidate schedule cache",
			zap.Error(err),
			zap.String("schedule_id", scheduleID),
		)
	}

	s.log.Info("Schedule updated",
		zap.String("schedule_id", scheduleID),
		zap.Int("capacity", req.Capacity),
		zap.Bool("active", req.Active),
	)

	resp := response.ScheduleToResponse(schedule)
	return &resp, nil
}

func (s *scheduleService) CreateRoute(ctx context.Context, req *request.CreateRouteRequest) (*response.RouteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create route validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	route := &entity.Route{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:          req.Name,
		OrderIndex:    req.OrderIndex,
		IsDestination: req.IsDestination,
		Active:        true,
	}

	if err := s.repo.Route.Create(ctx, route); err != nil {
		s.log.Error("Failed to create route", zap.Error(err))
		return nil, storeErr(err)
	}

	s.log.Info("Route created",
		zap.String("route_id", route.ID.String()),
		zap.String("name", route.Name),
	)

	resp := response.RouteToResponse(route)
	return &resp, nil
}

func (s *scheduleService) ListRoutes(ctx context.Context) ([]response.RouteResponse, error) {
	routes, err := s.repo.Route.FindAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	resp := make([]response.RouteResponse, len(routes))
	for i, route := range routes {
		resp[i] = response.RouteToResponse(route)
	}

	return resp, nil
}
