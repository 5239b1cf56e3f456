package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/middleware"
	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/scheduling"
	"github.com/noah-isme/tutoring-api/internal/service"
	appErrors "github.com/noah-isme/tutoring-api/pkg/errors"
	"github.com/noah-isme/tutoring-api/pkg/response"
)

// calendarMaxAge lets browsers reuse a disabled-date list briefly.
const calendarMaxAge = time.Minute

type bookingService interface {
	DisabledDatesView(ctx context.Context, termID int64) (*dto.DisabledDatesResponse, bool, error)
	CalendarDay(ctx context.Context, termID int64, date string) (*dto.CalendarDayResponse, error)
	RefreshCalendar(ctx context.Context, termID int64) error
	EligibleTutors(ctx context.Context, termID int64, q dto.EligibleTutorsQuery) ([]dto.TutorSummary, error)
	StartTimes(ctx context.Context, q dto.SlotQuery) (*dto.StartTimesResponse, error)
	EndTimes(ctx context.Context, q dto.EndTimesQuery) (*dto.EndTimesResponse, error)
	Location(ctx context.Context, q dto.LocationQuery) (*dto.LocationResponse, error)
	Validate(ctx context.Context, req dto.AppointmentRequest, appointmentID int64) (scheduling.Violations, error)
	Book(ctx context.Context, req dto.AppointmentRequest) (*models.Appointment, error)
	Reschedule(ctx context.Context, id int64, req dto.AppointmentRequest) (*models.Appointment, error)
	Cancel(ctx context.Context, id int64) error
	ListForUser(ctx context.Context, role, userID string) ([]models.Appointment, error)
}

// BookingHandler exposes the calendar, slot picker and appointment endpoints.
type BookingHandler struct {
	service bookingService
}

// NewBookingHandler constructs the handler.
func NewBookingHandler(svc bookingService) *BookingHandler {
	return &BookingHandler{service: svc}
}

// DisabledDates godoc
// @Summary Dates without any available tutor
// @Description Lists every date from today through the end of the term on which no tutor can be booked
// @Tags Calendar
// @Produce json
// @Param id path int true "Term ID"
// @Success 200 {object} response.Envelope
// @Router /terms/{id}/calendar/disabled-dates [get]
func (h *BookingHandler) DisabledDates(c *gin.Context) {
	termID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	res, cacheHit, err := h.service.DisabledDatesView(c.Request.Context(), termID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.Cacheable(c, res, calendarMaxAge, middleware.ExtractMeta(c))
}

// CalendarDay godoc
// @Summary Calendar cell state
// @Tags Calendar
// @Produce json
// @Param id path int true "Term ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /terms/{id}/calendar/days/{date} [get]
func (h *BookingHandler) CalendarDay(c *gin.Context) {
	termID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	res, err := h.service.CalendarDay(c.Request.Context(), termID, c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// RefreshCalendar godoc
// @Summary Drop cached calendar data for a term
// @Tags Calendar
// @Param id path int true "Term ID"
// @Success 204
// @Router /terms/{id}/calendar/refresh [post]
func (h *BookingHandler) RefreshCalendar(c *gin.Context) {
	termID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.service.RefreshCalendar(c.Request.Context(), termID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// EligibleTutors godoc
// @Summary Tutors teaching a course on a date
// @Tags Tutors
// @Produce json
// @Param id path int true "Term ID"
// @Param course query string true "Course code"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /terms/{id}/tutors [get]
func (h *BookingHandler) EligibleTutors(c *gin.Context) {
	termID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var q dto.EligibleTutorsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}
	tutors, err := h.service.EligibleTutors(c.Request.Context(), termID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tutors, nil)
}

// StartTimes godoc
// @Summary Bookable start times
// @Tags Tutors
// @Produce json
// @Param id path int true "Term ID"
// @Param userId path string true "Tutor user ID"
// @Param student_id query string true "Student user ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param appointment_id query int false "Appointment being edited"
// @Success 200 {object} response.Envelope
// @Router /terms/{id}/tutors/{userId}/start-times [get]
func (h *BookingHandler) StartTimes(c *gin.Context) {
	var q dto.SlotQuery
	if !bindSlotQuery(c, &q, &q) {
		return
	}
	res, err := h.service.StartTimes(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// EndTimes godoc
// @Summary End times offered for a start time
// @Tags Tutors
// @Produce json
// @Param id path int true "Term ID"
// @Param userId path string true "Tutor user ID"
// @Param student_id query string true "Student user ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start query string true "Start time (HH:MM)"
// @Param appointment_id query int false "Appointment being edited"
// @Success 200 {object} response.Envelope
// @Router /terms/{id}/tutors/{userId}/end-times [get]
func (h *BookingHandler) EndTimes(c *gin.Context) {
	var q dto.EndTimesQuery
	if !bindSlotQuery(c, &q, &q.SlotQuery) {
		return
	}
	res, err := h.service.EndTimes(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Location godoc
// @Summary Location a slot resolves to
// @Tags Tutors
// @Produce json
// @Param id path int true "Term ID"
// @Param userId path string true "Tutor user ID"
// @Param student_id query string true "Student user ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start query string false "Start time (HH:MM)"
// @Param end query string true "End time (HH:MM)"
// @Param appointment_id query int false "Appointment being edited"
// @Success 200 {object} response.Envelope
// @Router /terms/{id}/tutors/{userId}/location [get]
func (h *BookingHandler) Location(c *gin.Context) {
	var q dto.LocationQuery
	if !bindSlotQuery(c, &q, &q.SlotQuery) {
		return
	}
	res, err := h.service.Location(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Validate godoc
// @Summary Check an appointment against the booking rules
// @Tags Appointments
// @Accept json
// @Produce json
// @Param appointment_id query int false "Appointment being edited"
// @Param payload body dto.AppointmentRequest true "Appointment payload"
// @Success 200 {object} response.Envelope
// @Router /appointments/validate [post]
func (h *BookingHandler) Validate(c *gin.Context) {
	var req dto.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid appointment payload"))
		return
	}
	var appointmentID int64
	if raw := strings.TrimSpace(c.Query("appointment_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "appointment_id must be a non-negative integer"))
			return
		}
		appointmentID = id
	}

	violations, err := h.service.Validate(c.Request.Context(), req, appointmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	res := dto.ValidationResponse{Valid: violations.Valid(), Violations: []string(violations)}
	if res.Violations == nil {
		res.Violations = []string{}
	}
	if !res.Valid {
		res.HTML = violations.HTML()
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Book godoc
// @Summary Book an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param payload body dto.AppointmentRequest true "Appointment payload"
// @Success 201 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /appointments [post]
func (h *BookingHandler) Book(c *gin.Context) {
	var req dto.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid appointment payload"))
		return
	}
	appt, err := h.service.Book(c.Request.Context(), req)
	if err != nil {
		renderBookingError(c, err)
		return
	}
	response.Created(c, appt)
}

// Reschedule godoc
// @Summary Move or edit an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param payload body dto.AppointmentRequest true "Appointment payload"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /appointments/{id} [put]
func (h *BookingHandler) Reschedule(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req dto.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid appointment payload"))
		return
	}
	appt, err := h.service.Reschedule(c.Request.Context(), id, req)
	if err != nil {
		renderBookingError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appt, nil)
}

// Cancel godoc
// @Summary Cancel an appointment
// @Tags Appointments
// @Param id path int true "Appointment ID"
// @Success 204
// @Router /appointments/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListForUser godoc
// @Summary Appointments of a user
// @Tags Appointments
// @Produce json
// @Param id path string true "User ID"
// @Param role query string true "TUTOR or STUDENT"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/appointments [get]
func (h *BookingHandler) ListForUser(c *gin.Context) {
	appts, err := h.service.ListForUser(c.Request.Context(), c.Query("role"), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appts, nil)
}

func renderBookingError(c *gin.Context, err error) {
	var rejected *service.RejectionError
	if errors.As(err, &rejected) {
		response.ErrorWithMeta(c, err, map[string]interface{}{
			"violations": []string(rejected.Violations),
			"html":       rejected.Violations.HTML(),
		})
		return
	}
	response.Error(c, err)
}

// bindSlotQuery binds query parameters into dest and fills the embedded slot
// query from the path.
func bindSlotQuery(c *gin.Context, dest interface{}, slot *dto.SlotQuery) bool {
	termID, ok := int64Param(c, "id")
	if !ok {
		return false
	}
	if err := c.ShouldBindQuery(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return false
	}
	slot.TermID = termID
	slot.TutorID = c.Param("userId")
	return true
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}
