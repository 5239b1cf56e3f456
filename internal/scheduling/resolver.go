package scheduling

import (
	"time"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// ResolveIntervals returns the windows in which tutor can be booked on date.
//
// Regular blocks for the date's weekday come first. Each block is truncated
// at the start of the first exception on that date beginning inside it; later
// exceptions are ignored for that block. Exceptions carrying a location are
// then appended verbatim. Overlapping results are not merged, and windows that
// end up empty are dropped.
func ResolveIntervals(tutor models.TutorProfile, date time.Time) []Interval {
	exceptions := exceptionsOn(tutor.Exceptions, date)
	weekday := date.Weekday()

	var out []Interval
	for _, block := range tutor.RegularSchedule {
		if block.DayOfWeek != weekday {
			continue
		}
		ivl := blockInterval(block)
		if exc, ok := firstExceptionStartingIn(exceptions, ivl); ok {
			ivl, _ = ivl.Subtract(exceptionInterval(exc))
		}
		if !ivl.Empty() {
			out = append(out, ivl)
		}
	}

	for _, exc := range exceptions {
		if !exc.AddsAvailability() {
			continue
		}
		if ivl := exceptionInterval(exc); !ivl.Empty() {
			out = append(out, ivl)
		}
	}
	return out
}

// Available reports whether tutor has any bookable window on date.
func Available(tutor models.TutorProfile, date time.Time) bool {
	return len(ResolveIntervals(tutor, date)) > 0
}

func exceptionsOn(all []models.DateException, date time.Time) []models.DateException {
	var out []models.DateException
	for _, exc := range all {
		if models.SameDate(exc.Date, date) {
			out = append(out, exc)
		}
	}
	return out
}

func firstExceptionStartingIn(exceptions []models.DateException, ivl Interval) (models.DateException, bool) {
	for _, exc := range exceptions {
		if ivl.Contains(exc.StartTime) {
			return exc, true
		}
	}
	return models.DateException{}, false
}
