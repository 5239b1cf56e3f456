package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/tutoring-api/internal/models"
)

func TestStartTimesAfterSubtraction(t *testing.T) {
	tutor := mondayTutor()
	tutor.Exceptions = []models.DateException{exception(monday, "10:00", "10:30", "")}

	got := StartTimes(ResolveIntervals(tutor, monday), monday, Bookings{}, 0)

	assert.Equal(t, clocks("09:00", "09:30"), got)
}

func TestStartTimesForAddedWindow(t *testing.T) {
	tutor := mondayTutor()
	tutor.Exceptions = []models.DateException{exception(wednesday, "13:00", "15:00", "Room B")}

	got := StartTimes(ResolveIntervals(tutor, wednesday), wednesday, Bookings{}, 0)

	assert.Equal(t, clocks("13:00", "13:30", "14:00", "14:30"), got)
}

func TestStartTimesDropsPartialTrailingStep(t *testing.T) {
	intervals := []Interval{{Start: clk("09:00"), End: clk("10:15")}}

	assert.Equal(t, clocks("09:00", "09:30"), StartTimes(intervals, monday, Bookings{}, 0))
}

func TestStartTimesBoundariesAreHalfOpen(t *testing.T) {
	intervals := []Interval{{Start: clk("09:00"), End: clk("11:00")}}

	atStart := Bookings{Tutor: []models.Appointment{appointment(3, monday, "09:30", "10:00")}}
	assert.Equal(t, clocks("09:00", "10:00", "10:30"), StartTimes(intervals, monday, atStart, 0),
		"a slot at an appointment start is taken, a slot at its end is free")

	inside := Bookings{Tutee: []models.Appointment{appointment(4, monday, "09:15", "10:15")}}
	assert.Equal(t, clocks("09:00", "10:30"), StartTimes(intervals, monday, inside, 0))
}

func TestStartTimesIgnoresOtherDatesAndEditedAppointment(t *testing.T) {
	intervals := []Interval{{Start: clk("09:00"), End: clk("10:00")}}
	bookings := Bookings{
		Tutor: []models.Appointment{
			appointment(5, monday, "09:00", "09:30"),
			appointment(6, wednesday, "09:30", "10:00"),
		},
	}

	assert.Equal(t, clocks("09:30"), StartTimes(intervals, monday, bookings, 0))
	assert.Equal(t, clocks("09:00", "09:30"), StartTimes(intervals, monday, bookings, 5))
}

func TestStartTimesDeduplicatesAndSorts(t *testing.T) {
	intervals := []Interval{
		{Start: clk("13:00"), End: clk("14:00")},
		{Start: clk("09:00"), End: clk("10:00")},
		{Start: clk("09:00"), End: clk("10:00")},
	}

	first := StartTimes(intervals, monday, Bookings{}, 0)
	second := StartTimes(intervals, monday, Bookings{}, 0)

	assert.Equal(t, clocks("09:00", "09:30", "13:00", "13:30"), first)
	assert.Equal(t, first, second)
}

func TestTutorStartTimesExcludesSelf(t *testing.T) {
	tutor := mondayTutor()
	editing := appointment(12, monday, "09:00", "09:30")
	bookings := Bookings{Tutor: []models.Appointment{editing}}

	got := TutorStartTimes(tutor, bookings, editing)

	assert.Equal(t, clocks("09:00", "09:30", "10:00", "10:30"), got)
}

func TestEndTimeOptions(t *testing.T) {
	tutor := mondayTutor()
	appt := models.Appointment{Date: monday}

	opts := EndTimeOptions(tutor, Bookings{}, appt, clk("10:00"))
	assert.Equal(t, EndTimes{First: clk("10:30"), Second: clk("11:00"), HasSecond: true}, opts)

	opts = EndTimeOptions(tutor, Bookings{}, appt, clk("10:30"))
	assert.Equal(t, clk("11:00"), opts.First)
	assert.False(t, opts.HasSecond, "an hour from 10:30 runs past the block")

	busy := Bookings{Tutor: []models.Appointment{appointment(2, monday, "10:30", "11:00")}}
	opts = EndTimeOptions(tutor, busy, appt, clk("10:00"))
	assert.False(t, opts.HasSecond)
}
