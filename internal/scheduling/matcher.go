package scheduling

import (
	"github.com/noah-isme/tutoring-api/internal/models"
)

// UpdatedLocation determines where the proposed appointment would take place.
//
// An empty string comes back when the appointment's end time collides with an
// existing appointment of the tutor or the student on that date. Otherwise the
// first exception on the date whose window holds the end time wins, even if it
// carries no location; failing that, the first regular block for the weekday
// whose window holds the end time. No match yields an empty string.
func UpdatedLocation(tutor models.TutorProfile, bookings Bookings, appt models.Appointment) string {
	end := appt.EndTime
	if bookings.anyOn(appt.Date, appt.ID, func(existing Interval) bool {
		return existing.ContainsEnd(end)
	}) {
		return ""
	}

	for _, exc := range exceptionsOn(tutor.Exceptions, appt.Date) {
		if endMatches(exceptionInterval(exc), end) {
			return exc.Location
		}
	}

	weekday := appt.Date.Weekday()
	for _, block := range tutor.RegularSchedule {
		if block.DayOfWeek == weekday && endMatches(blockInterval(block), end) {
			return block.Location
		}
	}
	return ""
}

// FilteredTutors returns the tutors of the term who teach the appointment's
// course and either hold a regular block on its weekday or an added-window
// exception on its exact date.
func FilteredTutors(term models.Term, appt models.Appointment) []models.TutorProfile {
	var out []models.TutorProfile
	for _, tutor := range term.TutorProfiles {
		if !tutor.Teaches(appt.Course) {
			continue
		}
		if worksOnWeekday(tutor, appt) || addsWindowOn(tutor, appt) {
			out = append(out, tutor)
		}
	}
	return out
}

func worksOnWeekday(tutor models.TutorProfile, appt models.Appointment) bool {
	weekday := appt.Date.Weekday()
	for _, block := range tutor.RegularSchedule {
		if block.DayOfWeek == weekday {
			return true
		}
	}
	return false
}

func addsWindowOn(tutor models.TutorProfile, appt models.Appointment) bool {
	for _, exc := range exceptionsOn(tutor.Exceptions, appt.Date) {
		if exc.AddsAvailability() {
			return true
		}
	}
	return false
}

// SelectedTutor finds the term's tutor profile for userID.
func SelectedTutor(term models.Term, userID string) (models.TutorProfile, bool) {
	if userID == "" {
		return models.TutorProfile{}, false
	}
	for _, tutor := range term.TutorProfiles {
		if tutor.UserID == userID {
			return tutor, true
		}
	}
	return models.TutorProfile{}, false
}
