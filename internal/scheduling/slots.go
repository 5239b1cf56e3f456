package scheduling

import (
	"sort"
	"time"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// SlotStep is the spacing between generated start times. It is fixed at
// thirty minutes whatever increment the term was configured with.
const SlotStep = 30 * time.Minute

// Bookings is the snapshot of existing appointments a decision is checked
// against: the tutor's sessions as tutor and the student's sessions as tutee.
type Bookings struct {
	Tutor []models.Appointment
	Tutee []models.Appointment
}

// anyOn reports whether match holds for an appointment on date, skipping the
// appointment identified by excludeID when it is non-zero.
func (b Bookings) anyOn(date time.Time, excludeID int64, match func(Interval) bool) bool {
	for _, group := range [][]models.Appointment{b.Tutor, b.Tutee} {
		for _, existing := range group {
			if excludeID != 0 && existing.ID == excludeID {
				continue
			}
			if !models.SameDate(existing.Date, date) {
				continue
			}
			if match(appointmentInterval(existing)) {
				return true
			}
		}
	}
	return false
}

// StartTimes expands resolved intervals into bookable start times on date.
//
// Starts are emitted every SlotStep while a full step still fits before the
// interval end. A start is removed when it equals or falls strictly inside an
// existing appointment of the tutor or the student. The result is
// deduplicated and sorted ascending.
func StartTimes(intervals []Interval, date time.Time, bookings Bookings, excludeID int64) []models.Clock {
	step := models.Clock(SlotStep / time.Minute)
	seen := make(map[models.Clock]struct{})
	var slots []models.Clock

	for _, ivl := range intervals {
		for start := ivl.Start; start+step <= ivl.End; start += step {
			if _, dup := seen[start]; dup {
				continue
			}
			seen[start] = struct{}{}
			if slotTaken(start, date, bookings, excludeID) {
				continue
			}
			slots = append(slots, start)
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}

func slotTaken(start models.Clock, date time.Time, bookings Bookings, excludeID int64) bool {
	return bookings.anyOn(date, excludeID, func(existing Interval) bool {
		return start == existing.Start || (start > existing.Start && start < existing.End)
	})
}

// TutorStartTimes resolves the tutor's windows on the appointment's date and
// expands them into start times, ignoring the appointment itself.
func TutorStartTimes(tutor models.TutorProfile, bookings Bookings, appt models.Appointment) []models.Clock {
	return StartTimes(ResolveIntervals(tutor, appt.Date), appt.Date, bookings, appt.ID)
}

// EndTimes are the end times offered once a start time has been picked.
type EndTimes struct {
	First     models.Clock `json:"first"`
	Second    models.Clock `json:"second,omitempty"`
	HasSecond bool         `json:"has_second"`
}

// EndTimeOptions offers a thirty minute end for start and, when a location
// can still be determined for it, a sixty minute end as well.
func EndTimeOptions(tutor models.TutorProfile, bookings Bookings, appt models.Appointment, start models.Clock) EndTimes {
	opts := EndTimes{First: start.Add(SlotStep)}

	candidate := appt
	candidate.StartTime = start
	candidate.EndTime = start.Add(2 * SlotStep)
	if UpdatedLocation(tutor, bookings, candidate) != "" {
		opts.Second = candidate.EndTime
		opts.HasSecond = true
	}
	return opts
}
