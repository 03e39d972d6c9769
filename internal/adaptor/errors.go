package adaptor

import (
	"errors"
	"net/http"

	"github.com/SW-Wanted/riding/internal/usecase"
	"github.com/SW-Wanted/riding/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Every handler funnels service failures through here so the mapping stays
// in one place.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" failed validation", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed credentials check", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid email or password")

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" target not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrDuplicateBooking),
		errors.Is(err, usecase.ErrCapacityExceeded),
		errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrScheduleInactive):
		log.Warn(operation+" on inactive schedule", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrStoreUnavailable):
		log.Error(operation+" hit unavailable store", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "Service temporarily unavailable")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
