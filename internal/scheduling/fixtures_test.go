package scheduling

import (
	"time"

	"github.com/noah-isme/tutoring-api/internal/models"
)

var (
	monday    = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)
	saturday  = time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC)
)

func clk(raw string) models.Clock {
	return models.MustParseClock(raw)
}

func clocks(raw ...string) []models.Clock {
	out := make([]models.Clock, 0, len(raw))
	for _, r := range raw {
		out = append(out, clk(r))
	}
	return out
}

func block(day time.Weekday, start, end, location string) models.RegularScheduleBlock {
	return models.RegularScheduleBlock{DayOfWeek: day, StartTime: clk(start), EndTime: clk(end), Location: location}
}

func exception(date time.Time, start, end, location string) models.DateException {
	return models.DateException{Date: date, StartTime: clk(start), EndTime: clk(end), Location: location}
}

func appointment(id int64, date time.Time, start, end string) models.Appointment {
	return models.Appointment{
		ID:        id,
		TutorID:   "tutor-1",
		TuteeID:   "student-1",
		Date:      date,
		StartTime: clk(start),
		EndTime:   clk(end),
		Course:    "MATH 115",
		Purpose:   "Exam review",
		Location:  "Room A",
	}
}

// mondayTutor teaches MATH 115 on Mondays 09:00-11:00 in Room A.
func mondayTutor() models.TutorProfile {
	return models.TutorProfile{
		ID:      1,
		UserID:  "tutor-1",
		TermID:  7,
		Courses: []string{"MATH 115"},
		RegularSchedule: []models.RegularScheduleBlock{
			block(time.Monday, "09:00", "11:00", "Room A"),
		},
	}
}
