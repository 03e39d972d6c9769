package request

type CreateBookingRequest struct {
	ScheduleID  string `json:"schedule_id" validate:"required,uuid4"`
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
}
