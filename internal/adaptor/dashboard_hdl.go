package adaptor

import (
	"net/http"
	"time"

	"github.com/SW-Wanted/riding/internal/usecase"
	"github.com/SW-Wanted/riding/pkg/utils"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	service  usecase.DashboardService
	bookings usecase.BookingService
	log      *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, bookings usecase.BookingService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:  service,
		bookings: bookings,
		log:      log.With(zap.String("handler", "dashboard")),
	}
}

// GetStats handles GET /api/admin/stats (admin only)
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// ListVehicles handles GET /api/admin/vehicles (admin only)
func (h *DashboardHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.service.ListVehicles(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list vehicles")
		return
	}

	utils.ResponseSuccess(w, "success", vehicles)
}

// ListBookings handles GET /api/admin/bookings?date=&schedule_id= (admin only)
func (h *DashboardHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date := query.Get("date")
	if date == "" {
		date = time.Now().UTC().Format(utils.DateLayout)
	}

	bookings, err := h.bookings.ListForDate(r.Context(), query.Get("schedule_id"), date)
	if err != nil {
		handleServiceError(h.log, w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
