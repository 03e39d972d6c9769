package usecase

import (
	"errors"

	"github.com/SW-Wanted/riding/internal/data/repository"
)

// Service error taxonomy. Handlers map these to HTTP statuses with errors.Is;
// anything outside the taxonomy is an internal error.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateBooking   = errors.New("duplicate booking")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrScheduleInactive   = errors.New("schedule not active")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// storeErr lifts transient repository failures into the taxonomy so callers
// can retry on 503; other errors pass through as internal.
func storeErr(err error) error {
	if errors.Is(err, repository.ErrUnavailable) {
		return ErrStoreUnavailable
	}
	return err
}
