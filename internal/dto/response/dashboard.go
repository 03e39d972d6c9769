package response

import "github.com/SW-Wanted/riding/internal/data/entity"

type StatsResponse struct {
	TotalStudents  int64 `json:"total_students"`
	TotalDrivers   int64 `json:"total_drivers"`
	TotalVehicles  int64 `json:"total_vehicles"`
	ActiveVehicles int64 `json:"active_vehicles"`
	ActiveBookings int64 `json:"active_bookings"` // confirmed bookings
}

type VehicleResponse struct {
	ID          string  `json:"id"`
	PlateNumber string  `json:"plate_number"`
	Model       string  `json:"model"`
	Capacity    int     `json:"capacity"`
	DriverID    *string `json:"driver_id,omitempty"`
	Active      bool    `json:"active"`
}

func VehicleToResponse(vehicle *entity.Vehicle) VehicleResponse {
	resp := VehicleResponse{
		ID:          vehicle.ID.String(),
		PlateNumber: vehicle.PlateNumber,
		Model:       vehicle.Model,
		Capacity:    vehicle.Capacity,
		Active:      vehicle.Active,
	}
	if vehicle.DriverID != nil {
		id := vehicle.DriverID.String()
		resp.DriverID = &id
	}
	return resp
}
