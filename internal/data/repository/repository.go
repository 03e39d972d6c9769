package repository

import (
	"github.com/SW-Wanted/riding/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	University UniversityRepository
	Route      RouteRepository
	Schedule   ScheduleRepository
	Vehicle    VehicleRepository
	Booking    BookingRepository
	Payment    PaymentRepository
	Session    SessionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		University: NewUniversityRepository(db, log),
		Route:      NewRouteRepository(db, log),
		Schedule:   NewScheduleRepository(db, log),
		Vehicle:    NewVehicleRepository(db, log),
		Booking:    NewBookingRepository(db, log),
		Payment:    NewPaymentRepository(db, log),
		Session:    NewSessionRepository(db, log),
	}
}
