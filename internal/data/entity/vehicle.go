package entity

import "github.com/google/uuid"

type Vehicle struct {
	BaseSimple
	PlateNumber string     `db:"plate_number"`
	Model       string     `db:"model"`
	Capacity    int        `db:"capacity"`
	DriverID    *uuid.UUID `db:"driver_id"`
	Active      bool       `db:"active"`
}
