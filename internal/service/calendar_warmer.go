package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/pkg/jobs"
)

type publishedTermLister interface {
	List(ctx context.Context, filter models.TermFilter) ([]models.Term, int, error)
}

type disabledDatesComputer interface {
	DisabledDates(ctx context.Context, termID int64) ([]time.Time, bool, error)
}

// CalendarWarmerConfig tunes start-up warm-up.
type CalendarWarmerConfig struct {
	Concurrency int
	PageSize    int
}

// CalendarWarmer precomputes the disabled dates of every published term so
// the first calendar render of the day is served from cache.
type CalendarWarmer struct {
	terms    publishedTermLister
	calendar disabledDatesComputer
	queue    *jobs.Queue
	pageSize int
	logger   *zap.Logger
}

// NewCalendarWarmer builds a warmer backed by a worker queue.
func NewCalendarWarmer(terms publishedTermLister, calendar disabledDatesComputer, cfg CalendarWarmerConfig, logger *zap.Logger) *CalendarWarmer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	w := &CalendarWarmer{
		terms:    terms,
		calendar: calendar,
		pageSize: cfg.PageSize,
		logger:   logger,
	}
	w.queue = jobs.NewQueue("calendar-warmup", w.handle, jobs.QueueConfig{
		Workers:    cfg.Concurrency,
		MaxRetries: 1,
		Logger:     logger,
	})
	return w
}

// Warm enqueues every published term and waits for the workers to finish.
// It returns the number of terms scheduled. A warmer runs once.
func (w *CalendarWarmer) Warm(ctx context.Context) (int, error) {
	w.queue.Start(ctx)
	defer w.queue.Stop()

	published := true
	scheduled := 0
	for page := 1; ; page++ {
		terms, total, err := w.terms.List(ctx, models.TermFilter{Published: &published, Page: page, PageSize: w.pageSize})
		if err != nil {
			return scheduled, err
		}
		for _, term := range terms {
			job := jobs.Job{ID: strconv.FormatInt(term.ID, 10), Type: "calendar.warmup", Payload: term.ID}
			if err := w.queue.Enqueue(job); err != nil {
				return scheduled, err
			}
			scheduled++
		}
		if len(terms) == 0 || page*w.pageSize >= total {
			break
		}
	}

	if err := w.queue.Drain(ctx); err != nil {
		return scheduled, err
	}
	w.logger.Info("calendar warm-up finished", zap.Int("terms", scheduled))
	return scheduled, nil
}

func (w *CalendarWarmer) handle(ctx context.Context, job jobs.Job) error {
	termID, ok := job.Payload.(int64)
	if !ok {
		return nil
	}
	_, _, err := w.calendar.DisabledDates(ctx, termID)
	if err != nil {
		w.logger.Warn("calendar warm-up failed", zap.Int64("term_id", termID), zap.Error(err))
	}
	return err
}
