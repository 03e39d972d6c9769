package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SW-Wanted/riding/internal/dto/request"
	"github.com/SW-Wanted/riding/internal/usecase"
	"github.com/SW-Wanted/riding/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	service      usecase.ScheduleService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, availability usecase.AvailabilityService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service:      service,
		availability: availability,
		log:          log.With(zap.String("handler", "schedule")),
	}
}

// ListSchedules handles GET /api/schedules?date= (student)
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format(utils.DateLayout)
	}

	schedules, err := h.service.ListForStudent(r.Context(), userID, date)
	if err != nil {
		handleServiceError(h.log, w, err, "list schedules")
		return
	}

	utils.ResponseSuccess(w, "success", schedules)
}

// GetAvailability handles GET /api/schedules/{id}/availability?date= (student)
func (h *ScheduleHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		utils.ResponseBadRequest(w, "Schedule ID is required", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "Date is required", nil)
		return
	}

	availability, err := h.availability.GetAvailability(r.Context(), userID, scheduleID, date)
	if err != nil {
		handleServiceError(h.log, w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// ==================== ADMIN METHODS ====================

// CreateSchedule handles POST /api/admin/schedules (admin only)
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	schedule, err := h.service.CreateSchedule(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create schedule")
		return
	}

	utils.ResponseCreated(w, "success", schedule)
}

// UpdateSchedule handles PUT /api/admin/schedules/{id} (admin only)
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		utils.ResponseBadRequest(w, "Schedule ID is required", nil)
		return
	}

	var req request.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	schedule, err := h.service.UpdateSchedule(r.Context(), scheduleID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update schedule")
		return
	}

	utils.ResponseSuccess(w, "success", schedule)
}

// ListAllSchedules handles GET /api/admin/schedules (admin only)
func (h *ScheduleHandler) ListAllSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list all schedules")
		return
	}

	utils.ResponseSuccess(w, "success", schedules)
}

// CreateRoute handles POST /api/admin/routes (admin only)
func (h *ScheduleHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	route, err := h.service.CreateRoute(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create route")
		return
	}

	utils.ResponseCreated(w, "success", route)
}

// ListRoutes handles GET /api/admin/routes (admin only)
func (h *ScheduleHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.service.ListRoutes(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list routes")
		return
	}

	utils.ResponseSuccess(w, "success", routes)
}
