package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type Booking struct {
	Base
	StudentID     uuid.UUID     `db:"student_id"`
	ScheduleID    uuid.UUID     `db:"schedule_id"`
	BookingDate   time.Time     `db:"booking_date"`
	Status        BookingStatus `db:"status"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	CheckInTime   *time.Time    `db:"check_in_time"`
}

// IsActive reports whether the booking still holds a seat, i.e. counts
// against schedule capacity.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// CanTransitionTo encodes the booking lifecycle: pending moves to confirmed
// (check-in) or cancelled, confirmed moves to completed or cancelled, and
// completed/cancelled are terminal.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return target == BookingStatusConfirmed || target == BookingStatusCancelled
	case BookingStatusConfirmed:
		return target == BookingStatusCompleted || target == BookingStatusCancelled
	default:
		return false
	}
}
