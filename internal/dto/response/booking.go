package response

import (
	"time"

	"github.com/SW-Wanted/riding/internal/data/entity"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	StudentID     string               `json:"student_id"`
	ScheduleID    string               `json:"schedule_id"`
	BookingDate   string               `json:"booking_date"`
	Status        entity.BookingStatus `json:"status"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	CheckInTime   *time.Time           `json:"check_in_time,omitempty"`
	Shift         string               `json:"shift,omitempty"`
	DepartureTime string               `json:"departure_time,omitempty"`
	RouteName     string               `json:"route_name,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// ManifestEntry is a booking as presented on the driver's check-in list.
type ManifestEntry struct {
	BookingResponse
	StudentName   string  `json:"student_name"`
	StudentNumber *string `json:"student_number,omitempty"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            booking.ID.String(),
		StudentID:     booking.StudentID.String(),
		ScheduleID:    booking.ScheduleID.String(),
		BookingDate:   booking.BookingDate.Format("2006-01-02"),
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		CheckInTime:   booking.CheckInTime,
		CreatedAt:     booking.CreatedAt,
	}
}
