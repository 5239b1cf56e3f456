package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRejectsBeforeStart(t *testing.T) {
	q := NewQueue("events", func(context.Context, Job) error { return nil }, QueueConfig{})

	assert.Error(t, q.Enqueue(Job{ID: "1"}))
}

func TestQueueRunsJobs(t *testing.T) {
	done := make(chan string, 2)
	q := NewQueue("events", func(_ context.Context, j Job) error {
		done <- j.ID
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "a"}))
	require.NoError(t, q.Enqueue(Job{ID: "b"}))

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case id := <-done:
			got[id] = true
		case <-time.After(2 * time.Second):
			t.Fatal("job not processed")
		}
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true}, got)
}

func TestQueueRetriesUntilSuccess(t *testing.T) {
	var calls int32
	succeeded := make(chan int, 1)
	q := NewQueue("events", func(_ context.Context, j Job) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("broker down")
		}
		succeeded <- j.Attempt
		return nil
	}, QueueConfig{MaxRetries: 5, RetryDelay: time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "retry"}))

	select {
	case attempt := <-succeeded:
		assert.Equal(t, 2, attempt)
	case <-time.After(2 * time.Second):
		t.Fatal("job never succeeded")
	}
}

func TestQueueDrainWaitsForRetries(t *testing.T) {
	var calls atomic.Int32
	q := NewQueue("warmup", func(context.Context, Job) error {
		if calls.Add(1) == 1 {
			return errors.New("transient")
		}
		return nil
	}, QueueConfig{RetryDelay: time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "term-1"}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, q.Drain(ctx))
	assert.Equal(t, int32(2), calls.Load())
}
