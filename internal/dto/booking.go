package dto

import (
	"github.com/noah-isme/tutoring-api/internal/models"
)

// AppointmentRequest is the booking form payload. Missing end time, location,
// course or purpose are reported as violations by the scheduling validator.
type AppointmentRequest struct {
	TermID    int64        `json:"term_id" validate:"required,gt=0"`
	TutorID   string       `json:"tutor_id" validate:"required"`
	TuteeID   string       `json:"tutee_id" validate:"required"`
	Date      string       `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime models.Clock `json:"start_time"`
	EndTime   models.Clock `json:"end_time"`
	Location  string       `json:"location" validate:"max=120"`
	Course    string       `json:"course" validate:"max=40"`
	Purpose   string       `json:"purpose" validate:"max=1000"`
}

// SlotQuery identifies the tutor, student and date a picker is built for.
// AppointmentID is set when an existing appointment is being edited.
type SlotQuery struct {
	TermID        int64  `form:"-" validate:"required,gt=0"`
	TutorID       string `form:"-" validate:"required"`
	TuteeID       string `form:"student_id" validate:"required"`
	Date          string `form:"date" validate:"required,datetime=2006-01-02"`
	AppointmentID int64  `form:"appointment_id" validate:"gte=0"`
}

// EndTimesQuery asks for the end times offered after picking Start.
type EndTimesQuery struct {
	SlotQuery
	Start string `form:"start" validate:"required"`
}

// LocationQuery asks where a proposed slot would take place.
type LocationQuery struct {
	SlotQuery
	Start string `form:"start"`
	End   string `form:"end" validate:"required"`
}

// EligibleTutorsQuery filters a term's tutors by course and date.
type EligibleTutorsQuery struct {
	Course string `form:"course" validate:"required"`
	Date   string `form:"date" validate:"required,datetime=2006-01-02"`
}

// DisabledDatesResponse lists the unbookable dates of a term from today on.
type DisabledDatesResponse struct {
	TermID int64    `json:"term_id"`
	From   string   `json:"from"`
	Dates  []string `json:"dates"`
}

// CalendarDayResponse is the rendering decision for one calendar cell.
type CalendarDayResponse struct {
	Date     string `json:"date"`
	Disabled bool   `json:"disabled"`
}

// StartTimesResponse lists bookable start times for a tutor on a date.
type StartTimesResponse struct {
	Date       string         `json:"date"`
	StartTimes []models.Clock `json:"start_times"`
}

// EndTimesResponse lists the end times offered for a chosen start.
type EndTimesResponse struct {
	Start    models.Clock   `json:"start"`
	EndTimes []models.Clock `json:"end_times"`
}

// LocationResponse carries the location a slot resolves to. Determined is
// false when no location could be found, meaning the slot cannot be booked.
type LocationResponse struct {
	Location   string `json:"location"`
	Determined bool   `json:"determined"`
}

// TutorSummary is the public view of a tutor profile.
type TutorSummary struct {
	UserID    string   `json:"user_id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	AboutMe   string   `json:"about_me,omitempty"`
	Courses   []string `json:"courses"`
}

// ValidationResponse reports the outcome of validating an appointment.
type ValidationResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
	HTML       string   `json:"html,omitempty"`
}
