package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ShiftType string

const (
	ShiftMorningGo       ShiftType = "morning_go"
	ShiftMorningReturn   ShiftType = "morning_return"
	ShiftAfternoonGo     ShiftType = "afternoon_go"
	ShiftAfternoonReturn ShiftType = "afternoon_return"
	ShiftNightReturn     ShiftType = "night_return"
)

type Schedule struct {
	BaseSimple
	UniversityID  uuid.UUID `db:"university_id"`
	RouteID       uuid.UUID `db:"route_id"`
	Shift         ShiftType `db:"shift"`
	DepartureTime string    `db:"departure_time"` // HH:MM
	DaysOfWeek    []string  `db:"days_of_week"`   // lowercase weekday names
	Capacity      int       `db:"capacity"`
	Active        bool      `db:"active"`
}

// RunsOn reports whether the schedule operates on the weekday of the given date.
func (s *Schedule) RunsOn(date time.Time) bool {
	weekday := strings.ToLower(date.Weekday().String())
	for _, day := range s.DaysOfWeek {
		if strings.ToLower(day) == weekday {
			return true
		}
	}
	return false
}
