package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/tutoring-api/internal/models"
)

func termEnding(end time.Time, tutors ...models.TutorProfile) models.Term {
	start := monday.AddDate(0, 0, -14)
	return models.Term{ID: 7, Name: "Fall", StartDate: &start, EndDate: &end, Published: true, TutorProfiles: tutors}
}

func dates(offsets ...int) []time.Time {
	out := make([]time.Time, 0, len(offsets))
	for _, o := range offsets {
		out = append(out, monday.AddDate(0, 0, o))
	}
	return out
}

func TestDisabledDatesIncludesTermEnd(t *testing.T) {
	friday := monday.AddDate(0, 0, 4)
	term := termEnding(friday, mondayTutor())

	got := DisabledDates(term, monday)

	assert.Equal(t, dates(1, 2, 3, 4), got)
}

func TestDisabledDatesCountsAddedWindows(t *testing.T) {
	tutor := mondayTutor()
	tutor.Exceptions = []models.DateException{exception(wednesday, "13:00", "15:00", "Room B")}
	term := termEnding(monday.AddDate(0, 0, 4), tutor)

	assert.Equal(t, dates(1, 3, 4), DisabledDates(term, monday))
}

func TestDisabledDatesFullyRemovedDay(t *testing.T) {
	tutor := mondayTutor()
	tutor.Exceptions = []models.DateException{exception(monday, "09:00", "11:00", "")}
	term := termEnding(monday.AddDate(0, 0, 1), tutor)

	assert.Equal(t, dates(0, 1), DisabledDates(term, monday))
}

func TestDisabledDatesWithoutTutors(t *testing.T) {
	term := termEnding(monday.AddDate(0, 0, 2))

	assert.Equal(t, dates(0, 1, 2), DisabledDates(term, monday))
}

func TestDisabledDatesOpenEndedUsesHorizon(t *testing.T) {
	term := models.Term{ID: 8, TutorProfiles: []models.TutorProfile{mondayTutor()}}

	assert.Equal(t, dates(1, 2), DisabledDatesWithin(term, monday, 3))
	assert.Len(t, DisabledDatesWithin(term, monday, 0), MaxScanHorizonDays-53)
}

func TestDisabledDatesTermAlreadyOver(t *testing.T) {
	term := termEnding(monday.AddDate(0, 0, -1), mondayTutor())

	assert.Empty(t, DisabledDates(term, monday))
}

func TestIsDateDisabled(t *testing.T) {
	friday := monday.AddDate(0, 0, 4)
	term := termEnding(friday)
	disabled := NewDateSet(wednesday)

	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"open weekday", monday, false},
		{"listed", wednesday, true},
		{"weekend", saturday, true},
		{"past", monday.AddDate(0, 0, -3), true},
		{"term end", friday, false},
		{"after term", monday.AddDate(0, 0, 7), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDateDisabled(tc.date, term, disabled, monday))
		})
	}
}

func TestDateSetSorted(t *testing.T) {
	set := NewDateSet(wednesday, monday, wednesday)

	assert.True(t, set.Has(monday))
	assert.False(t, set.Has(saturday))
	assert.Equal(t, []time.Time{monday, wednesday}, set.Sorted())
}
