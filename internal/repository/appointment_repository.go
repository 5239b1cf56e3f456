package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutoring-api/internal/models"
)

const appointmentColumns = "id, tutor_id, tutee_id, date, start_time, end_time, location, course, purpose, term_id, created_at, updated_at"

// AppointmentRepository persists booked tutoring sessions.
type AppointmentRepository struct {
	db *sqlx.DB
}

// NewAppointmentRepository instantiates an appointment repository.
func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// FindByID loads a single appointment. sql.ErrNoRows is returned untouched.
func (r *AppointmentRepository) FindByID(ctx context.Context, id int64) (*models.Appointment, error) {
	query := fmt.Sprintf("SELECT %s FROM appointments WHERE id = $1", appointmentColumns)
	var appt models.Appointment
	if err := r.db.GetContext(ctx, &appt, query, id); err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListByTutor returns the appointments the user holds as tutor.
func (r *AppointmentRepository) ListByTutor(ctx context.Context, tutorID string) ([]models.Appointment, error) {
	return r.list(ctx, "tutor_id = $1", tutorID)
}

// ListByTutee returns the appointments the user booked as student.
func (r *AppointmentRepository) ListByTutee(ctx context.Context, tuteeID string) ([]models.Appointment, error) {
	return r.list(ctx, "tutee_id = $1", tuteeID)
}

// ListByTutorOn narrows ListByTutor to one calendar date.
func (r *AppointmentRepository) ListByTutorOn(ctx context.Context, tutorID string, date time.Time) ([]models.Appointment, error) {
	return r.list(ctx, "tutor_id = $1 AND date = $2", tutorID, models.DateOf(date))
}

// ListByTuteeOn narrows ListByTutee to one calendar date.
func (r *AppointmentRepository) ListByTuteeOn(ctx context.Context, tuteeID string, date time.Time) ([]models.Appointment, error) {
	return r.list(ctx, "tutee_id = $1 AND date = $2", tuteeID, models.DateOf(date))
}

func (r *AppointmentRepository) list(ctx context.Context, where string, args ...interface{}) ([]models.Appointment, error) {
	query := fmt.Sprintf("SELECT %s FROM appointments WHERE %s ORDER BY date, start_time, id", appointmentColumns, where)
	var appts []models.Appointment
	if err := r.db.SelectContext(ctx, &appts, query, args...); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// Create inserts a new appointment and fills in its generated ID.
func (r *AppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	return r.create(ctx, r.db, appt)
}

// Update rewrites a stored appointment.
func (r *AppointmentRepository) Update(ctx context.Context, appt *models.Appointment) error {
	return r.update(ctx, r.db, appt)
}

// Delete removes an appointment. sql.ErrNoRows reports an unknown id.
func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete appointment rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// BookingTx exposes the appointment operations available inside a booking
// transaction.
type BookingTx interface {
	ListByTutorOn(ctx context.Context, tutorID string, date time.Time) ([]models.Appointment, error)
	ListByTuteeOn(ctx context.Context, tuteeID string, date time.Time) ([]models.Appointment, error)
	Create(ctx context.Context, appt *models.Appointment) error
	Update(ctx context.Context, appt *models.Appointment) error
}

// WithinBookingTx runs fn in a serializable transaction so that the
// conflict check and the write observe the same snapshot. The transaction
// commits when fn returns nil.
func (r *AppointmentRepository) WithinBookingTx(ctx context.Context, fn func(BookingTx) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&bookingTx{repo: r, tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit booking tx: %w", err)
	}
	return nil
}

type bookingTx struct {
	repo *AppointmentRepository
	tx   *sqlx.Tx
}

func (b *bookingTx) ListByTutorOn(ctx context.Context, tutorID string, date time.Time) ([]models.Appointment, error) {
	return b.listTx(ctx, "tutor_id = $1 AND date = $2", tutorID, models.DateOf(date))
}

func (b *bookingTx) ListByTuteeOn(ctx context.Context, tuteeID string, date time.Time) ([]models.Appointment, error) {
	return b.listTx(ctx, "tutee_id = $1 AND date = $2", tuteeID, models.DateOf(date))
}

func (b *bookingTx) listTx(ctx context.Context, where string, args ...interface{}) ([]models.Appointment, error) {
	query := fmt.Sprintf("SELECT %s FROM appointments WHERE %s ORDER BY date, start_time, id", appointmentColumns, where)
	var appts []models.Appointment
	if err := b.tx.SelectContext(ctx, &appts, query, args...); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

func (b *bookingTx) Create(ctx context.Context, appt *models.Appointment) error {
	return b.repo.create(ctx, b.tx, appt)
}

func (b *bookingTx) Update(ctx context.Context, appt *models.Appointment) error {
	return b.repo.update(ctx, b.tx, appt)
}

type queryer interface {
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (r *AppointmentRepository) create(ctx context.Context, q queryer, appt *models.Appointment) error {
	now := time.Now().UTC()
	appt.Date = models.DateOf(appt.Date)
	appt.CreatedAt = now
	appt.UpdatedAt = now

	const query = `INSERT INTO appointments (tutor_id, tutee_id, date, start_time, end_time, location, course, purpose, term_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	if err := q.QueryRowxContext(ctx, query,
		appt.TutorID, appt.TuteeID, appt.Date, appt.StartTime, appt.EndTime,
		appt.Location, appt.Course, appt.Purpose, appt.TermID, appt.CreatedAt, appt.UpdatedAt,
	).Scan(&appt.ID); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) update(ctx context.Context, q queryer, appt *models.Appointment) error {
	appt.Date = models.DateOf(appt.Date)
	appt.UpdatedAt = time.Now().UTC()

	const query = `UPDATE appointments SET tutor_id = $2, tutee_id = $3, date = $4, start_time = $5, end_time = $6, location = $7, course = $8, purpose = $9, term_id = $10, updated_at = $11 WHERE id = $1`
	res, err := q.ExecContext(ctx, query,
		appt.ID, appt.TutorID, appt.TuteeID, appt.Date, appt.StartTime, appt.EndTime,
		appt.Location, appt.Course, appt.Purpose, appt.TermID, appt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update appointment rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
