package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentTypeDaily   PaymentType = "daily"
	PaymentTypeWeekly  PaymentType = "weekly"
	PaymentTypeMonthly PaymentType = "monthly"
)

// Payment is a transport pass covering bookings between StartDate and EndDate.
type Payment struct {
	BaseSimple
	StudentID     uuid.UUID   `db:"student_id"`
	PaymentType   PaymentType `db:"payment_type"`
	Amount        float64     `db:"amount"`
	StartDate     time.Time   `db:"start_date"`
	EndDate       time.Time   `db:"end_date"`
	Status        string      `db:"status"`
	PaymentMethod *string     `db:"payment_method"`
}

// Covers reports whether the pass applies to the given booking date.
func (p *Payment) Covers(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
