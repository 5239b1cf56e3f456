package models

import (
	"strings"
	"time"
)

// TutorProfile is a tutor's enrolment in a single term together with the
// availability data the scheduler resolves against.
type TutorProfile struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	TermID    int64     `db:"term_id" json:"term_id"`
	Approved  bool      `db:"approved" json:"approved"`
	AboutMe   string    `db:"about_me" json:"about_me"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Courses         []string               `db:"-" json:"courses"`
	RegularSchedule []RegularScheduleBlock `db:"-" json:"regular_schedule"`
	Exceptions      []DateException        `db:"-" json:"exceptions"`
}

// Teaches reports whether the tutor offers the given course.
func (p TutorProfile) Teaches(course string) bool {
	for _, c := range p.Courses {
		if c == course {
			return true
		}
	}
	return false
}

// FullName joins the tutor's first and last name.
func (p TutorProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// RegularScheduleBlock is a weekly recurring availability window.
type RegularScheduleBlock struct {
	ID             int64        `db:"id" json:"id"`
	TutorProfileID int64        `db:"tutor_profile_id" json:"tutor_profile_id"`
	DayOfWeek      time.Weekday `db:"day_of_week" json:"day_of_week"`
	StartTime      Clock        `db:"start_time" json:"start_time"`
	EndTime        Clock        `db:"end_time" json:"end_time"`
	Location       string       `db:"location" json:"location"`
}

// DateException overrides a tutor's availability on one calendar date.
// A non-empty Location adds a window; an empty one carves time out of the
// regular schedule.
type DateException struct {
	ID             int64     `db:"id" json:"id"`
	TutorProfileID int64     `db:"tutor_profile_id" json:"tutor_profile_id"`
	Date           time.Time `db:"date" json:"date"`
	StartTime      Clock     `db:"start_time" json:"start_time"`
	EndTime        Clock     `db:"end_time" json:"end_time"`
	Location       string    `db:"location" json:"location"`
}

// AddsAvailability reports whether the exception is an added window.
func (e DateException) AddsAvailability() bool {
	return e.Location != ""
}
