package adaptor

import (
	"net/http"
	"time"

	"github.com/SW-Wanted/riding/internal/usecase"
	"github.com/SW-Wanted/riding/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DriverHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewDriverHandler(service usecase.BookingService, log *zap.Logger) *DriverHandler {
	return &DriverHandler{
		service: service,
		log:     log.With(zap.String("handler", "driver")),
	}
}

// ListBookings handles GET /api/driver/bookings?date=&schedule_id= (driver)
func (h *DriverHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date := query.Get("date")
	if date == "" {
		date = time.Now().UTC().Format(utils.DateLayout)
	}

	bookings, err := h.service.ListForDate(r.Context(), query.Get("schedule_id"), date)
	if err != nil {
		handleServiceError(h.log, w, err, "list driver bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// CheckIn handles PUT /api/driver/bookings/{id}/check-in (driver)
func (h *DriverHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	driverID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	if err := h.service.CheckIn(r.Context(), bookingID, driverID); err != nil {
		handleServiceError(h.log, w, err, "check in booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Complete handles PUT /api/driver/bookings/{id}/complete (driver)
func (h *DriverHandler) Complete(w http.ResponseWriter, r *http.Request) {
	driverID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	if err := h.service.Complete(r.Context(), bookingID, driverID); err != nil {
		handleServiceError(h.log, w, err, "complete booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
