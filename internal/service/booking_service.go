package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/repository"
	"github.com/noah-isme/tutoring-api/internal/scheduling"
	appErrors "github.com/noah-isme/tutoring-api/pkg/errors"
	"github.com/noah-isme/tutoring-api/pkg/middleware/requestid"
)

type bookingTermReader interface {
	FindByID(ctx context.Context, id int64) (*models.Term, error)
}

type tutorRosterReader interface {
	ListByTerm(ctx context.Context, termID int64) ([]models.TutorProfile, error)
}

type appointmentStore interface {
	FindByID(ctx context.Context, id int64) (*models.Appointment, error)
	ListByTutor(ctx context.Context, tutorID string) ([]models.Appointment, error)
	ListByTutee(ctx context.Context, tuteeID string) ([]models.Appointment, error)
	ListByTutorOn(ctx context.Context, tutorID string, date time.Time) ([]models.Appointment, error)
	ListByTuteeOn(ctx context.Context, tuteeID string, date time.Time) ([]models.Appointment, error)
	Delete(ctx context.Context, id int64) error
	WithinBookingTx(ctx context.Context, fn func(repository.BookingTx) error) error
}

type userReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type appointmentNotifier interface {
	NewEvent(eventType models.AppointmentEventType, appt models.Appointment) models.AppointmentEvent
	Notify(ctx context.Context, event models.AppointmentEvent) error
}

// snapshotLoader is the read side shared by the plain repository and a
// booking transaction.
type snapshotLoader interface {
	ListByTutorOn(ctx context.Context, tutorID string, date time.Time) ([]models.Appointment, error)
	ListByTuteeOn(ctx context.Context, tuteeID string, date time.Time) ([]models.Appointment, error)
}

// RejectionError is returned when an appointment breaks a booking rule.
type RejectionError struct {
	Violations scheduling.Violations
}

func (e *RejectionError) Error() string {
	return "appointment rejected: " + e.Violations.Error()
}

// Unwrap exposes the typed API error so handlers render a 422.
func (e *RejectionError) Unwrap() error {
	return appErrors.Clone(appErrors.ErrAppointmentRejected, e.Violations.Error())
}

// BookingServiceConfig tunes calendar behaviour.
type BookingServiceConfig struct {
	CacheTTL        time.Duration
	ScanHorizonDays int
	// Location decides which calendar day "today" is.
	Location *time.Location
}

// BookingServiceParams groups constructor dependencies.
type BookingServiceParams struct {
	Terms        bookingTermReader
	Tutors       tutorRosterReader
	Appointments appointmentStore
	Users        userReader
	Notifier     appointmentNotifier
	Cache        *CacheService
	Metrics      *MetricsService
	Validator    *validator.Validate
	Logger       *zap.Logger
	Config       BookingServiceConfig
}

// BookingService loads consistent snapshots and delegates every scheduling
// decision to the scheduling package.
type BookingService struct {
	terms        bookingTermReader
	tutors       tutorRosterReader
	appointments appointmentStore
	users        userReader
	notifier     appointmentNotifier
	cache        *CacheService
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
	cfg          BookingServiceConfig
}

// NewBookingService constructs the booking service.
func NewBookingService(params BookingServiceParams) *BookingService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := params.Config
	if cfg.ScanHorizonDays <= 0 {
		cfg.ScanHorizonDays = scheduling.MaxScanHorizonDays
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &BookingService{
		terms:        params.Terms,
		tutors:       params.Tutors,
		appointments: params.Appointments,
		users:        params.Users,
		notifier:     params.Notifier,
		cache:        params.Cache,
		metrics:      params.Metrics,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
		cfg:          cfg,
	}
}

func (s *BookingService) today() time.Time {
	return models.DateOf(s.now().In(s.cfg.Location))
}

// DisabledDates lists the dates from today through the end of the term on
// which no tutor is available. The boolean reports a cache hit.
func (s *BookingService) DisabledDates(ctx context.Context, termID int64) ([]time.Time, bool, error) {
	today := s.today()
	key := CalendarKey(termID, today)

	var cached []string
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		dates, parseErr := parseDates(cached)
		if parseErr == nil {
			return dates, true, nil
		}
		s.logger.Warn("discarding malformed disabled-date cache entry", zap.String("key", key), zap.Error(parseErr))
	}

	term, err := s.loadTermWithRoster(ctx, termID)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	dates := scheduling.DisabledDatesWithin(*term, today, s.cfg.ScanHorizonDays)
	s.metrics.ObserveCalendarScan(time.Since(start))

	_ = s.cache.Set(ctx, key, formatDates(dates), s.cfg.CacheTTL)
	return dates, false, nil
}

// DisabledDatesView wraps DisabledDates for API responses.
func (s *BookingService) DisabledDatesView(ctx context.Context, termID int64) (*dto.DisabledDatesResponse, bool, error) {
	dates, hit, err := s.DisabledDates(ctx, termID)
	if err != nil {
		return nil, false, err
	}
	return &dto.DisabledDatesResponse{
		TermID: termID,
		From:   s.today().Format(models.DateLayout),
		Dates:  formatDates(dates),
	}, hit, nil
}

// CalendarDay decides whether a calendar cell must be rendered disabled.
func (s *BookingService) CalendarDay(ctx context.Context, termID int64, rawDate string) (*dto.CalendarDayResponse, error) {
	date, err := models.ParseDate(rawDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be YYYY-MM-DD")
	}

	term, err := s.findTerm(ctx, termID)
	if err != nil {
		return nil, err
	}
	dates, _, err := s.DisabledDates(ctx, termID)
	if err != nil {
		return nil, err
	}

	disabled := scheduling.IsDateDisabled(date, *term, scheduling.NewDateSet(dates...), s.today())
	return &dto.CalendarDayResponse{Date: date.Format(models.DateLayout), Disabled: disabled}, nil
}

// RefreshCalendar drops every cached disabled-date set of the term.
func (s *BookingService) RefreshCalendar(ctx context.Context, termID int64) error {
	if _, err := s.findTerm(ctx, termID); err != nil {
		return err
	}
	if err := s.cache.InvalidateCalendar(ctx, termID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to refresh calendar cache")
	}
	return nil
}

// EligibleTutors lists the tutors of the term who teach course and work on date.
func (s *BookingService) EligibleTutors(ctx context.Context, termID int64, q dto.EligibleTutorsQuery) ([]dto.TutorSummary, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tutor filter")
	}
	date, err := models.ParseDate(q.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be YYYY-MM-DD")
	}

	term, err := s.loadTermWithRoster(ctx, termID)
	if err != nil {
		return nil, err
	}

	tutors := scheduling.FilteredTutors(*term, models.Appointment{Date: date, Course: q.Course})
	out := make([]dto.TutorSummary, 0, len(tutors))
	for _, t := range tutors {
		out = append(out, dto.TutorSummary{
			UserID:    t.UserID,
			FirstName: t.FirstName,
			LastName:  t.LastName,
			AboutMe:   t.AboutMe,
			Courses:   t.Courses,
		})
	}
	return out, nil
}

// StartTimes lists the bookable start times for the tutor and student on a date.
func (s *BookingService) StartTimes(ctx context.Context, q dto.SlotQuery) (*dto.StartTimesResponse, error) {
	appt, tutor, bookings, err := s.prepareSlot(ctx, q)
	if err != nil {
		return nil, err
	}
	times := scheduling.TutorStartTimes(tutor, bookings, appt)
	if times == nil {
		times = []models.Clock{}
	}
	return &dto.StartTimesResponse{Date: appt.Date.Format(models.DateLayout), StartTimes: times}, nil
}

// EndTimes lists the end times offered once a start time is picked.
func (s *BookingService) EndTimes(ctx context.Context, q dto.EndTimesQuery) (*dto.EndTimesResponse, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end time query")
	}
	start, err := models.ParseClock(q.Start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "start must be HH:MM")
	}

	appt, tutor, bookings, err := s.prepareSlot(ctx, q.SlotQuery)
	if err != nil {
		return nil, err
	}

	opts := scheduling.EndTimeOptions(tutor, bookings, appt, start)
	ends := []models.Clock{opts.First}
	if opts.HasSecond {
		ends = append(ends, opts.Second)
	}
	return &dto.EndTimesResponse{Start: start, EndTimes: ends}, nil
}

// Location resolves where the proposed slot would take place.
func (s *BookingService) Location(ctx context.Context, q dto.LocationQuery) (*dto.LocationResponse, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid location query")
	}
	end, err := models.ParseClock(q.End)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "end must be HH:MM")
	}

	appt, tutor, bookings, err := s.prepareSlot(ctx, q.SlotQuery)
	if err != nil {
		return nil, err
	}
	if q.Start != "" {
		if appt.StartTime, err = models.ParseClock(q.Start); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "start must be HH:MM")
		}
	}
	appt.EndTime = end

	location := scheduling.UpdatedLocation(tutor, bookings, appt)
	return &dto.LocationResponse{Location: location, Determined: location != ""}, nil
}

// Validate runs the booking rules without persisting anything.
func (s *BookingService) Validate(ctx context.Context, req dto.AppointmentRequest, appointmentID int64) (scheduling.Violations, error) {
	appt, err := s.appointmentFromRequest(req, appointmentID)
	if err != nil {
		return nil, err
	}
	term, err := s.loadTermWithRoster(ctx, appt.TermID)
	if err != nil {
		return nil, err
	}
	tutor, err := tutorOf(*term, appt.TutorID)
	if err != nil {
		return nil, err
	}
	bookings, err := loadBookings(ctx, s.appointments, appt)
	if err != nil {
		return nil, err
	}

	violations := scheduling.Validate(appt, tutor, bookings)
	s.observeDecision(violations)
	return violations, nil
}

// Book validates and stores a new appointment.
func (s *BookingService) Book(ctx context.Context, req dto.AppointmentRequest) (*models.Appointment, error) {
	appt, err := s.save(ctx, req, 0)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, models.AppointmentBooked, *appt)
	return appt, nil
}

// Reschedule validates and rewrites an existing appointment.
func (s *BookingService) Reschedule(ctx context.Context, id int64, req dto.AppointmentRequest) (*models.Appointment, error) {
	if _, err := s.findAppointment(ctx, id); err != nil {
		return nil, err
	}
	appt, err := s.save(ctx, req, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, models.AppointmentRescheduled, *appt)
	return appt, nil
}

// Cancel deletes an appointment.
func (s *BookingService) Cancel(ctx context.Context, id int64) error {
	appt, err := s.findAppointment(ctx, id)
	if err != nil {
		return err
	}
	if err := s.appointments.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel appointment")
	}
	s.publish(ctx, models.AppointmentCancelled, *appt)
	return nil
}

// ListForUser returns the user's appointments for the given role: as tutor
// for TUTOR, as tutee for STUDENT and nothing for any other role.
func (s *BookingService) ListForUser(ctx context.Context, role, userID string) ([]models.Appointment, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	var (
		appts []models.Appointment
		err   error
	)
	switch models.UserRole(strings.ToUpper(strings.TrimSpace(role))) {
	case models.RoleTutor:
		appts, err = s.appointments.ListByTutor(ctx, userID)
	case models.RoleStudent:
		appts, err = s.appointments.ListByTutee(ctx, userID)
	default:
		return []models.Appointment{}, nil
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list appointments")
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	return appts, nil
}

func (s *BookingService) save(ctx context.Context, req dto.AppointmentRequest, id int64) (*models.Appointment, error) {
	appt, err := s.appointmentFromRequest(req, id)
	if err != nil {
		return nil, err
	}
	term, err := s.loadTermWithRoster(ctx, appt.TermID)
	if err != nil {
		return nil, err
	}
	if !term.Published {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "term is not open for booking")
	}
	tutor, err := tutorOf(*term, appt.TutorID)
	if err != nil {
		return nil, err
	}

	err = s.appointments.WithinBookingTx(ctx, func(tx repository.BookingTx) error {
		bookings, err := loadBookings(ctx, tx, appt)
		if err != nil {
			return err
		}
		if strings.TrimSpace(appt.Location) == "" {
			appt.Location = scheduling.UpdatedLocation(tutor, bookings, appt)
		}

		violations := scheduling.Validate(appt, tutor, bookings)
		s.observeDecision(violations)
		if !violations.Valid() {
			return &RejectionError{Violations: violations}
		}

		if appt.IsNew() {
			return tx.Create(ctx, &appt)
		}
		return tx.Update(ctx, &appt)
	})
	if err != nil {
		var rejected *RejectionError
		switch {
		case errors.As(err, &rejected):
			return nil, rejected
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		default:
			var typed *appErrors.Error
			if errors.As(err, &typed) {
				return nil, typed
			}
			s.metrics.ObserveBookingDecision(OutcomeFailed)
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save appointment")
		}
	}

	s.logger.Info("appointment saved",
		zap.Int64("appointment_id", appt.ID),
		zap.Int64("term_id", appt.TermID),
		zap.String("tutor_id", appt.TutorID),
		zap.String("date", appt.Date.Format(models.DateLayout)),
		zap.Stringer("start", appt.StartTime))
	return &appt, nil
}

func (s *BookingService) appointmentFromRequest(req dto.AppointmentRequest, id int64) (models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Appointment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid appointment payload")
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return models.Appointment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be YYYY-MM-DD")
	}
	return models.Appointment{
		ID:        id,
		TermID:    req.TermID,
		TutorID:   req.TutorID,
		TuteeID:   req.TuteeID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  strings.TrimSpace(req.Location),
		Course:    strings.TrimSpace(req.Course),
		Purpose:   strings.TrimSpace(req.Purpose),
	}, nil
}

func (s *BookingService) prepareSlot(ctx context.Context, q dto.SlotQuery) (models.Appointment, models.TutorProfile, scheduling.Bookings, error) {
	if err := s.validator.Struct(q); err != nil {
		return models.Appointment{}, models.TutorProfile{}, scheduling.Bookings{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot query")
	}
	date, err := models.ParseDate(q.Date)
	if err != nil {
		return models.Appointment{}, models.TutorProfile{}, scheduling.Bookings{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be YYYY-MM-DD")
	}

	term, err := s.loadTermWithRoster(ctx, q.TermID)
	if err != nil {
		return models.Appointment{}, models.TutorProfile{}, scheduling.Bookings{}, err
	}
	tutor, err := tutorOf(*term, q.TutorID)
	if err != nil {
		return models.Appointment{}, models.TutorProfile{}, scheduling.Bookings{}, err
	}

	appt := models.Appointment{ID: q.AppointmentID, TermID: q.TermID, TutorID: q.TutorID, TuteeID: q.TuteeID, Date: date}
	bookings, err := loadBookings(ctx, s.appointments, appt)
	if err != nil {
		return models.Appointment{}, models.TutorProfile{}, scheduling.Bookings{}, err
	}
	return appt, tutor, bookings, nil
}

func (s *BookingService) findTerm(ctx context.Context, termID int64) (*models.Term, error) {
	term, err := s.terms.FindByID(ctx, termID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load term")
	}
	return term, nil
}

func (s *BookingService) loadTermWithRoster(ctx context.Context, termID int64) (*models.Term, error) {
	term, err := s.findTerm(ctx, termID)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	tutors, err := s.tutors.ListByTerm(ctx, termID)
	s.metrics.ObserveDBQuery("tutor_roster", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutors")
	}
	term.TutorProfiles = tutors
	return term, nil
}

func (s *BookingService) findAppointment(ctx context.Context, id int64) (*models.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointment")
	}
	return appt, nil
}

func (s *BookingService) observeDecision(v scheduling.Violations) {
	if v.Valid() {
		s.metrics.ObserveBookingDecision(OutcomeAccepted)
		return
	}
	s.metrics.ObserveBookingDecision(OutcomeRejected)
}

func (s *BookingService) publish(ctx context.Context, eventType models.AppointmentEventType, appt models.Appointment) {
	if s.notifier == nil {
		return
	}
	event := s.notifier.NewEvent(eventType, appt)
	event.RequestID = requestid.FromContext(ctx)
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("appointment event not queued",
			zap.String("type", string(eventType)),
			zap.Int64("appointment_id", appt.ID),
			zap.Error(err))
	}
}

func tutorOf(term models.Term, userID string) (models.TutorProfile, error) {
	tutor, ok := scheduling.SelectedTutor(term, userID)
	if !ok {
		return models.TutorProfile{}, appErrors.Clone(appErrors.ErrNotFound, "tutor is not part of this term")
	}
	return tutor, nil
}

func loadBookings(ctx context.Context, src snapshotLoader, appt models.Appointment) (scheduling.Bookings, error) {
	asTutor, err := src.ListByTutorOn(ctx, appt.TutorID, appt.Date)
	if err != nil {
		return scheduling.Bookings{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutor appointments")
	}
	asTutee, err := src.ListByTuteeOn(ctx, appt.TuteeID, appt.Date)
	if err != nil {
		return scheduling.Bookings{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student appointments")
	}
	return scheduling.Bookings{Tutor: asTutor, Tutee: asTutee}, nil
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(models.DateLayout))
	}
	return out
}

func parseDates(raw []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		d, err := models.ParseDate(r)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
