package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCacheRepo struct{ err error }

func (f failingCacheRepo) Get(context.Context, string, interface{}) error { return f.err }
func (f failingCacheRepo) Set(context.Context, string, interface{}, time.Duration) error {
	return f.err
}
func (f failingCacheRepo) DeleteByPattern(context.Context, string) error { return f.err }

func TestCacheServiceHitAndMiss(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewCacheService(newMemoryCacheRepo(), metrics, 0, nil, true)
	ctx := context.Background()

	var out []string
	hit, err := svc.Get(ctx, "calendar:disabled:1:2024-03-04", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(ctx, "calendar:disabled:1:2024-03-04", []string{"2024-03-05"}, 0))
	hit, err = svc.Get(ctx, "calendar:disabled:1:2024-03-04", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"2024-03-05"}, out)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cacheLookups.WithLabelValues("miss")))
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newMemoryCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, nil, false)

	assert.False(t, svc.Enabled())
	require.NoError(t, svc.Set(context.Background(), "k", "v", 0))
	assert.Empty(t, repo.entries)

	var nilSvc *CacheService
	hit, err := nilSvc.Get(context.Background(), "k", new(string))
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceSurfacesBackendErrors(t *testing.T) {
	svc := NewCacheService(failingCacheRepo{err: errors.New("connection refused")}, nil, time.Minute, nil, true)
	ctx := context.Background()

	hit, err := svc.Get(ctx, "k", new(string))
	assert.Error(t, err)
	assert.False(t, hit)
	assert.Error(t, svc.Set(ctx, "k", "v", 0))
	assert.Error(t, svc.Invalidate(ctx, "k*"))
}

func TestCalendarKeys(t *testing.T) {
	day := time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "calendar:disabled:7:2024-03-04", CalendarKey(7, day))
	assert.Equal(t, "calendar:disabled:7:*", CalendarPattern(7))

	repo := newMemoryCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, nil, true)
	require.NoError(t, svc.InvalidateCalendar(context.Background(), 7))
	assert.Equal(t, []string{"calendar:disabled:7:*"}, repo.invalidated)
}
