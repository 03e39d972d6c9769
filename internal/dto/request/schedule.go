package request

type CreateScheduleRequest struct {
	UniversityID  string   `json:"university_id" validate:"required,uuid4"`
	RouteID       string   `json:"route_id" validate:"required,uuid4"`
	Shift         string   `json:"shift" validate:"required,oneof=morning_go morning_return afternoon_go afternoon_return night_return"`
	DepartureTime string   `json:"departure_time" validate:"required,datetime=15:04"`
	DaysOfWeek    []string `json:"days_of_week" validate:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Capacity      int      `json:"capacity" validate:"required,min=1"`
}

type UpdateScheduleRequest struct {
	RouteID       string   `json:"route_id" validate:"required,uuid4"`
	Shift         string   `json:"shift" validate:"required,oneof=morning_go morning_return afternoon_go afternoon_return night_return"`
	DepartureTime string   `json:"departure_time" validate:"required,datetime=15:04"`
	DaysOfWeek    []string `json:"days_of_week" validate:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Capacity      int      `json:"capacity" validate:"required,min=1"`
	Active        bool     `json:"active"`
}

type CreateRouteRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=120"`
	OrderIndex    int    `json:"order_index" validate:"min=0"`
	IsDestination bool   `json:"is_destination"`
}
