package wire

import (
	"github.com/SW-Wanted/riding/internal/adaptor"
	"github.com/SW-Wanted/riding/internal/data/entity"
	"github.com/SW-Wanted/riding/internal/data/repository"
	"github.com/SW-Wanted/riding/pkg/middleware"
	"github.com/SW-Wanted/riding/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireDashboard(
	r chi.Router,
	dashboardHandler *adaptor.DashboardHandler,
	scheduleHandler *adaptor.ScheduleHandler,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Role(repo.User, log, entity.RoleAdmin))

		// GET /api/admin/stats - Operational counters for the dashboard
		r.Get("/stats", dashboardHandler.GetStats)

		// GET /api/admin/vehicles - Fleet listing
		r.Get("/vehicles", dashboardHandler.ListVehicles)

		// GET /api/admin/bookings?date=&schedule_id= - All bookings for a date
		r.Get("/bookings", dashboardHandler.ListBookings)

		// PUT /api/admin/bookings/{id}/cancel - Cancel any student's booking
		r.Put("/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// Schedule and route management
		r.Get("/schedules", scheduleHandler.ListAllSchedules)
		r.Post("/schedules", scheduleHandler.CreateSchedule)
		r.Put("/schedules/{id}", scheduleHandler.UpdateSchedule)
		r.Post("/routes", scheduleHandler.CreateRoute)
		r.Get("/routes", scheduleHandler.ListRoutes)
	})
}
