package response

import (
	"github.com/SW-Wanted/riding/internal/data/entity"
)

type RouteResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	OrderIndex    int    `json:"order_index"`
	IsDestination bool   `json:"is_destination"`
	Active        bool   `json:"active"`
}

type ScheduleResponse struct {
	ID            string   `json:"id"`
	UniversityID  string   `json:"university_id"`
	RouteID       string   `json:"route_id"`
	RouteName     string   `json:"route_name,omitempty"`
	Shift         string   `json:"shift"`
	DepartureTime string   `json:"departure_time"`
	DaysOfWeek    []string `json:"days_of_week"`
	Capacity      int      `json:"capacity"`
	Active        bool     `json:"active"`
}

// StudentScheduleResponse decorates a schedule with per-date availability for
// the student dashboard.
type StudentScheduleResponse struct {
	ScheduleResponse
	Date              string `json:"date"`
	RemainingCapacity int    `json:"remaining_capacity"`
	Booked            bool   `json:"booked"`
}

type AvailabilityResponse struct {
	ScheduleID        string `json:"schedule_id"`
	Date              string `json:"date"`
	RemainingCapacity int    `json:"remaining_capacity"`
	HasActiveBooking  bool   `json:"has_active_booking"`
}

func RouteToResponse(route *entity.Route) RouteResponse {
	return RouteResponse{
		ID:            route.ID.String(),
		Name:          route.Name,
		OrderIndex:    route.OrderIndex,
		IsDestination: route.IsDestination,
		Active:        route.Active,
	}
}

func ScheduleToResponse(schedule *entity.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:            schedule.ID.String(),
		UniversityID:  schedule.UniversityID.String(),
		RouteID:       schedule.RouteID.String(),
		Shift:         string(schedule.Shift),
		DepartureTime: schedule.DepartureTime,
		DaysOfWeek:    schedule.DaysOfWeek,
		Capacity:      schedule.Capacity,
		Active:        schedule.Active,
	}
}
