package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tutoring-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-api/pkg/errors"
	"github.com/noah-isme/tutoring-api/pkg/jobs"
	"github.com/noah-isme/tutoring-api/pkg/messaging"
)

// NotificationServiceConfig tunes event delivery.
type NotificationServiceConfig struct {
	Enabled       bool
	RoutingPrefix string
	Workers       int
	Retries       int
	RetryDelay    time.Duration
}

// NotificationService hands appointment lifecycle events to the broker
// through a retrying background queue.
type NotificationService struct {
	publisher messaging.Publisher
	queue     *jobs.Queue
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       NotificationServiceConfig
	now       func() time.Time
}

// NewNotificationService wires the publisher to a worker queue. Call Start
// before Notify.
func NewNotificationService(publisher messaging.Publisher, metrics *MetricsService, cfg NotificationServiceConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	if cfg.RoutingPrefix == "" {
		cfg.RoutingPrefix = "tutoring"
	}
	s := &NotificationService{
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
	s.queue = jobs.NewQueue("appointment-events", s.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.Retries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start launches the delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	if s == nil || !s.cfg.Enabled {
		return
	}
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *NotificationService) Stop() {
	if s == nil || !s.cfg.Enabled {
		return
	}
	s.queue.Stop()
}

// NewEvent stamps an appointment event with an id and the current time.
func (s *NotificationService) NewEvent(eventType models.AppointmentEventType, appt models.Appointment) models.AppointmentEvent {
	now := time.Now
	if s != nil && s.now != nil {
		now = s.now
	}
	return models.AppointmentEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		Appointment: appt,
		OccurredAt:  now().UTC(),
	}
}

// Notify enqueues event for asynchronous publication. It is a no-op when
// notifications are disabled.
func (s *NotificationService) Notify(ctx context.Context, event models.AppointmentEvent) error {
	if s == nil || !s.cfg.Enabled {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	job := jobs.Job{ID: event.ID, Type: string(event.Type), Payload: event}
	if err := s.queue.Enqueue(job); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue appointment event")
	}
	return nil
}

// Publish delivers event synchronously.
func (s *NotificationService) Publish(ctx context.Context, event models.AppointmentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal appointment event: %w", err)
	}
	msg := messaging.Message{
		ID:            event.ID,
		CorrelationID: event.RequestID,
		RoutingKey:    s.RoutingKey(event.Type),
		Body:          body,
		Timestamp:     event.OccurredAt,
	}
	err = s.publisher.Publish(ctx, msg)
	s.metrics.RecordEventPublished(string(event.Type), err)
	if err != nil {
		return err
	}
	s.logger.Debug("appointment event published",
		zap.String("event_id", event.ID),
		zap.String("routing_key", msg.RoutingKey),
		zap.Int64("appointment_id", event.Appointment.ID))
	return nil
}

// RoutingKey derives the broker routing key for an event type.
func (s *NotificationService) RoutingKey(eventType models.AppointmentEventType) string {
	return s.cfg.RoutingPrefix + "." + string(eventType)
}

func (s *NotificationService) handle(ctx context.Context, job jobs.Job) error {
	event, ok := job.Payload.(models.AppointmentEvent)
	if !ok {
		s.logger.Error("unexpected notification payload", zap.String("job_id", job.ID), zap.String("type", job.Type))
		return nil
	}
	return s.Publish(ctx, event)
}
