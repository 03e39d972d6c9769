package usecase

import (
	"context"

	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/internal/data/repository"
	"github.com/SW-Wanted/riding/internal/dto/response"

	"go.uber.org/zap"
)

type DashboardService interface {
	Stats(ctx context.Context) (*response.StatsResponse, error)
	ListVehicles(ctx context.Context) ([]response.VehicleResponse, error)
}

type dashboardService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDashboardService(repo *repository.Repository, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		log:  log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*response.StatsResponse, error) {
	students, err := s.repo.User.CountByRole(ctx, entity.RoleStudent)
	if err != nil {
		return nil, storeErr(err)
	}

	drivers, err := s.repo.User.CountByRole(ctx, entity.RoleDriver)
	if err != nil {
		return nil, storeErr(err)
	}

	vehicles, err := s.repo.Vehicle.Count(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	activeVehicles, err := s.repo.Vehicle.CountActive(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	activeBookings, err := s.repo.Booking.CountByStatus(ctx, entity.BookingStatusConfirmed)
	if err != nil {
		return nil, storeErr(err)
	}

	return &response.StatsResponse{
		TotalStudents:  students,
		TotalDrivers:   drivers,
		TotalVehicles:  vehicles,
		ActiveVehicles: activeVehicles,
		ActiveBookings: activeBookings,
	}, nil
}

func (s *dashboardService) ListVehicles(ctx context.Context) ([]response.VehicleResponse, error) {
	vehicles, err := s.repo.Vehicle.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list vehicles", zap.Error(err))
		return nil, storeErr(err)
	}

	resp := make([]response.VehicleResponse, len(vehicles))
	for i, vehicle := range vehicles {
		resp[i] = response.VehicleToResponse(vehicle)
	}

	return resp, nil
}
