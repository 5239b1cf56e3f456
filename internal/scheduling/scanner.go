package scheduling

import (
	"sort"
	"time"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// MaxScanHorizonDays bounds the scan for terms without an end date.
const MaxScanHorizonDays = 366

// DisabledDates lists every date from today through the term's end date on
// which no tutor of the term has a bookable window. Open-ended terms are
// scanned for MaxScanHorizonDays.
func DisabledDates(term models.Term, today time.Time) []time.Time {
	return DisabledDatesWithin(term, today, MaxScanHorizonDays)
}

// DisabledDatesWithin is DisabledDates with an explicit horizon for open-ended terms.
func DisabledDatesWithin(term models.Term, today time.Time, horizonDays int) []time.Time {
	if horizonDays <= 0 {
		horizonDays = MaxScanHorizonDays
	}
	start := models.DateOf(today)
	last := start.AddDate(0, 0, horizonDays-1)
	if term.EndDate != nil {
		last = models.DateOf(*term.EndDate)
	}

	var disabled []time.Time
	for date := start; !date.After(last); date = date.AddDate(0, 0, 1) {
		if !anyTutorAvailable(term.TutorProfiles, date) {
			disabled = append(disabled, date)
		}
	}
	return disabled
}

func anyTutorAvailable(tutors []models.TutorProfile, date time.Time) bool {
	for _, tutor := range tutors {
		if Available(tutor, date) {
			return true
		}
	}
	return false
}

// IsDateDisabled decides whether a calendar cell must be greyed out: the
// date is disabled, falls on a weekend, lies before today or lies after the
// end of the term.
func IsDateDisabled(date time.Time, term models.Term, disabled DateSet, today time.Time) bool {
	day := models.DateOf(date)
	if disabled.Has(day) {
		return true
	}
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	if day.Before(models.DateOf(today)) {
		return true
	}
	return term.EndDate != nil && day.After(models.DateOf(*term.EndDate))
}

// DateSet is a set of calendar dates keyed by YYYY-MM-DD.
type DateSet map[string]struct{}

// NewDateSet builds a set holding dates.
func NewDateSet(dates ...time.Time) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

// Add inserts date into the set.
func (s DateSet) Add(date time.Time) {
	s[date.Format(models.DateLayout)] = struct{}{}
}

// Has reports membership of date.
func (s DateSet) Has(date time.Time) bool {
	_, ok := s[date.Format(models.DateLayout)]
	return ok
}

// Sorted returns the members in ascending order.
func (s DateSet) Sorted() []time.Time {
	out := make([]time.Time, 0, len(s))
	for key := range s {
		if d, err := models.ParseDate(key); err == nil {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
