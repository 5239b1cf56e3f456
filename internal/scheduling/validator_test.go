package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-api/internal/models"
)

func TestValidateReportsMissingFieldsInOrder(t *testing.T) {
	appt := models.Appointment{Date: monday, StartTime: clk("09:00")}

	got := Validate(appt, mondayTutor(), Bookings{})

	assert.Equal(t, Violations{MsgEndTimeMissing, MsgLocationMissing, MsgCourseMissing, MsgPurposeMissing}, got)
	assert.False(t, got.Valid())
}

func TestValidateMissingFieldsShortCircuit(t *testing.T) {
	appt := appointment(0, saturday, "09:00", "09:30")
	appt.Purpose = "  "

	assert.Equal(t, Violations{MsgPurposeMissing}, Validate(appt, mondayTutor(), Bookings{}))
}

func TestValidateTutorUnavailable(t *testing.T) {
	tutor := mondayTutor()
	tutor.Exceptions = []models.DateException{
		exception(monday, "10:00", "10:30", ""),
		exception(monday, "13:00", "15:00", "Room B"),
	}
	appt := appointment(0, monday, "10:00", "10:30")

	assert.Equal(t, Violations{MsgTutorUnavailable}, Validate(appt, tutor, Bookings{}))
}

func TestValidateAcrossAdjacentWindows(t *testing.T) {
	tutor := mondayTutor()
	tutor.Exceptions = []models.DateException{exception(monday, "11:00", "12:00", "Room B")}
	appt := appointment(0, monday, "10:30", "11:30")

	assert.True(t, Validate(appt, tutor, Bookings{}).Valid())
}

func TestValidateOverlap(t *testing.T) {
	bookings := Bookings{Tutor: []models.Appointment{appointment(1, monday, "10:00", "11:00")}}
	appt := appointment(2, monday, "10:30", "11:00")

	assert.Equal(t, Violations{MsgOverlap}, Validate(appt, mondayTutor(), bookings))
}

func TestValidateExcludesSelf(t *testing.T) {
	existing := appointment(1, monday, "10:00", "11:00")
	bookings := Bookings{Tutor: []models.Appointment{existing}}

	assert.Empty(t, Validate(existing, mondayTutor(), bookings))
}

func TestValidateOnlyNestedAppointmentsConflict(t *testing.T) {
	bookings := Bookings{Tutee: []models.Appointment{appointment(1, monday, "10:00", "10:30")}}
	appt := appointment(0, monday, "09:30", "10:30")

	assert.True(t, Validate(appt, mondayTutor(), bookings).Valid(), "a straddling appointment is not nested")
}

func TestViolationsRendering(t *testing.T) {
	v := Violations{MsgCourseMissing, "a < b"}

	assert.Equal(t, `<li style="color:red">Course has not been set.</li><li style="color:red">a &lt; b</li>`, v.HTML())
	require.Error(t, v.Err())
	assert.Equal(t, "Course has not been set. a < b", v.Err().Error())
	assert.NoError(t, Violations(nil).Err())
}
