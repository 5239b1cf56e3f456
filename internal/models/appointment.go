package models

import "time"

// Appointment is a booked tutoring session. ID 0 marks an unsaved appointment.
type Appointment struct {
	ID        int64     `db:"id" json:"id"`
	TutorID   string    `db:"tutor_id" json:"tutor_id"`
	TuteeID   string    `db:"tutee_id" json:"tutee_id"`
	Date      time.Time `db:"date" json:"date"`
	StartTime Clock     `db:"start_time" json:"start_time"`
	EndTime   Clock     `db:"end_time" json:"end_time"`
	Location  string    `db:"location" json:"location"`
	Course    string    `db:"course" json:"course"`
	Purpose   string    `db:"purpose" json:"purpose"`
	TermID    int64     `db:"term_id" json:"term_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsNew reports whether the appointment has not been persisted yet.
func (a Appointment) IsNew() bool {
	return a.ID == 0
}

// AppointmentEventType names lifecycle events published for appointments.
type AppointmentEventType string

const (
	AppointmentBooked      AppointmentEventType = "appointment.booked"
	AppointmentRescheduled AppointmentEventType = "appointment.rescheduled"
	AppointmentCancelled   AppointmentEventType = "appointment.cancelled"
)

// AppointmentEvent is the payload handed to downstream notifiers.
type AppointmentEvent struct {
	ID          string               `json:"id"`
	Type        AppointmentEventType `json:"type"`
	Appointment Appointment          `json:"appointment"`
	OccurredAt  time.Time            `json:"occurred_at"`
	RequestID   string               `json:"request_id,omitempty"`
}
