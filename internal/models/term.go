package models

import "time"

// TimeIncrement is the booking granularity configured for a term.
type TimeIncrement string

const (
	TimeIncrementHour     TimeIncrement = "HOUR"
	TimeIncrementHalfHour TimeIncrement = "HALF_HOUR"
)

// Term models a tutoring term. Nil start/end dates mean the term is open ended.
type Term struct {
	ID                    int64          `db:"id" json:"id"`
	Name                  string         `db:"name" json:"name"`
	StartDate             *time.Time     `db:"start_date" json:"start_date,omitempty"`
	EndDate               *time.Time     `db:"end_date" json:"end_date,omitempty"`
	TimeIncrement         *TimeIncrement `db:"time_increment" json:"time_increment,omitempty"`
	MaxHoursTuteesAllowed float64        `db:"max_hours_tutees_allowed" json:"max_hours_tutees_allowed"`
	MinTutorWeeklyHours   float64        `db:"min_tutor_weekly_hours" json:"min_tutor_weekly_hours"`
	MaxTutorWeeklyHours   float64        `db:"max_tutor_weekly_hours" json:"max_tutor_weekly_hours"`
	Published             bool           `db:"published" json:"published"`
	CreatedAt             time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at" json:"updated_at"`

	Courses       []string       `db:"-" json:"courses,omitempty"`
	TutorProfiles []TutorProfile `db:"-" json:"tutor_profiles,omitempty"`
}

// HasValidBounds reports whether start <= end when both bounds are set.
func (t Term) HasValidBounds() bool {
	if t.StartDate == nil || t.EndDate == nil {
		return true
	}
	return !DateOf(*t.StartDate).After(DateOf(*t.EndDate))
}

// TermFilter defines filters supported by list endpoints.
type TermFilter struct {
	Published *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
