package models

import (
	"strings"
	"time"
)

// RoleType defines the user role type carried in access tokens
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleTeacher RoleType = "TEACHER"
)

// Weekday is the upper-case English day name used by recurrence templates
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

var weekdays = map[Weekday]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// ParseWeekday converts a day name (any case) to a Weekday
func ParseWeekday(s string) (Weekday, bool) {
	d := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := weekdays[d]
	return d, ok
}

// TimeWeekday returns the time.Weekday for d. Unknown values map to Sunday.
func (d Weekday) TimeWeekday() time.Weekday {
	return weekdays[d]
}
