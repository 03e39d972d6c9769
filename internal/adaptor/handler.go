package adaptor

import (
	"github.com/SW-Wanted/riding/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Booking   *BookingHandler
	Schedule  *ScheduleHandler
	Driver    *DriverHandler
	Dashboard *DashboardHandler
	Payment   *PaymentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Booking:   NewBookingHandler(service.Booking, log),
		Schedule:  NewScheduleHandler(service.Schedule, service.Availability, log),
		Driver:    NewDriverHandler(service.Booking, log),
		Dashboard: NewDashboardHandler(service.Dashboard, service.Booking, log),
		Payment:   NewPaymentHandler(service.Payment, log),
	}
}
