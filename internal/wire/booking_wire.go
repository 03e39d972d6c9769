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

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== STUDENT ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Role(repo.User, log, entity.RoleStudent))

		// POST /api/bookings - Reserve a seat on a shift
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/user/bookings - Booking history (own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})

	// PUT /api/bookings/{id}/cancel - Cancel own booking; admins may cancel any
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Role(repo.User, log, entity.RoleStudent, entity.RoleAdmin))

		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
	})
}
