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

func wireSchedule(
	r chi.Router,
	scheduleHandler *adaptor.ScheduleHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== STUDENT ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Role(repo.User, log, entity.RoleStudent))

		// GET /api/schedules?date= - Schedules for the student's university
		r.Get("/api/schedules", scheduleHandler.ListSchedules)

		// GET /api/schedules/{id}/availability?date= - Remaining seats
		r.Get("/api/schedules/{id}/availability", scheduleHandler.GetAvailability)
	})
}
