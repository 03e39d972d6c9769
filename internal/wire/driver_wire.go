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

func wireDriver(
	r chi.Router,
	driverHandler *adaptor.DriverHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== DRIVER ROUTES ====================
	r.Route("/api/driver", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Role(repo.User, log, entity.RoleDriver))

		// GET /api/driver/bookings?date=&schedule_id= - Rider manifest
		r.Get("/bookings", driverHandler.ListBookings)

		// PUT /api/driver/bookings/{id}/check-in - Mark rider as boarded
		r.Put("/bookings/{id}/check-in", driverHandler.CheckIn)

		// PUT /api/driver/bookings/{id}/complete - Mark ride as finished
		r.Put("/bookings/{id}/complete", driverHandler.Complete)
	})
}
