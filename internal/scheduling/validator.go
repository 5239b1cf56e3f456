package scheduling

import (
	"html"
	"strings"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// Violation messages reported by Validate.
const (
	MsgEndTimeMissing   = "End Time has not been set."
	MsgLocationMissing  = "Location has not been set."
	MsgCourseMissing    = "Course has not been set."
	MsgPurposeMissing   = "Purpose has not been provided."
	MsgTutorUnavailable = "The tutor is not available at the selected date and time."
	MsgOverlap          = "The appointment overlaps with another made appointment."
)

// Violations collects human readable business rule failures. An empty list
// means the appointment may be saved.
type Violations []string

// Valid reports whether no rule was violated.
func (v Violations) Valid() bool {
	return len(v) == 0
}

// Error implements the error interface.
func (v Violations) Error() string {
	return strings.Join(v, " ")
}

// Err returns nil for a valid result and the violations otherwise.
func (v Violations) Err() error {
	if v.Valid() {
		return nil
	}
	return v
}

// HTML renders one list item per violation, the fragment the booking form shows.
func (v Violations) HTML() string {
	var b strings.Builder
	for _, msg := range v {
		b.WriteString(`<li style="color:red">`)
		b.WriteString(html.EscapeString(msg))
		b.WriteString(`</li>`)
	}
	return b.String()
}

// Validate runs the final checks before an appointment is persisted. The
// stages short-circuit: missing fields, then tutor availability, then
// conflicts with existing appointments.
func Validate(appt models.Appointment, tutor models.TutorProfile, bookings Bookings) Violations {
	if missing := missingFields(appt); len(missing) > 0 {
		return missing
	}

	if !withinAvailability(ResolveIntervals(tutor, appt.Date), appt) {
		return Violations{MsgTutorUnavailable}
	}

	if nestsInExisting(appt, bookings) {
		return Violations{MsgOverlap}
	}
	return nil
}

func missingFields(appt models.Appointment) Violations {
	var out Violations
	if appt.EndTime.IsZero() {
		out = append(out, MsgEndTimeMissing)
	}
	if strings.TrimSpace(appt.Location) == "" {
		out = append(out, MsgLocationMissing)
	}
	if strings.TrimSpace(appt.Course) == "" {
		out = append(out, MsgCourseMissing)
	}
	if strings.TrimSpace(appt.Purpose) == "" {
		out = append(out, MsgPurposeMissing)
	}
	return out
}

// withinAvailability requires the start to fall in some window and the end
// in some window; the two windows need not be the same.
func withinAvailability(intervals []Interval, appt models.Appointment) bool {
	var startOK, endOK bool
	for _, ivl := range intervals {
		startOK = startOK || ivl.Contains(appt.StartTime)
		endOK = endOK || ivl.ContainsEnd(appt.EndTime)
	}
	return startOK && endOK
}

func nestsInExisting(appt models.Appointment, bookings Bookings) bool {
	return bookings.anyOn(appt.Date, appt.ID, func(existing Interval) bool {
		return existing.Contains(appt.StartTime) && existing.ContainsEnd(appt.EndTime)
	})
}
