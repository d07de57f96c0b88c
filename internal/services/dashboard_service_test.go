package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCache struct {
	data map[string]string
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	default:
		return errors.New("unsupported cache value type")
	}
	c.sets++
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.data[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type fakeDashboardRepo struct {
	counts  repositories.EquipmentCounts
	byState map[string]int
}

func (r *fakeDashboardRepo) GetEquipmentCounts(ctx context.Context) (*repositories.EquipmentCounts, error) {
	c := r.counts
	return &c, nil
}

func (r *fakeDashboardRepo) GetRequestCountsByState(ctx context.Context) (map[string]int, error) {
	if r.byState == nil {
		return map[string]int{}, nil
	}
	return r.byState, nil
}

func TestDashboardStatsComputedAndCached(t *testing.T) {
	maintenanceSvc, maintenanceRepo, _, _ := newTestMaintenanceService()

	ctx := authedCtx(1)
	_, err := maintenanceSvc.CreateRequest(ctx, dto.CreateMaintenanceRequestDTO{Name: "open one"})
	require.NoError(t, err)
	_, err = maintenanceSvc.CreateRequest(ctx, dto.CreateMaintenanceRequestDTO{
		Name:          "overdue one",
		ScheduledDate: null.TimeFrom(time.Now().Add(-48 * time.Hour)),
	})
	require.NoError(t, err)

	cache := newFakeCache()
	dashboardRepo := &fakeDashboardRepo{
		counts:  repositories.EquipmentCounts{Total: 9, Down: 2, Scrapped: 1},
		byState: map[string]int{"draft": 2},
	}
	svc := NewDashboardService(maintenanceRepo, dashboardRepo, cache, time.Minute, zap.NewNop())

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Open)
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, map[string]int{"draft": 2}, stats.ByState)
	assert.Equal(t, 9, stats.EquipmentTotal)
	assert.Equal(t, 2, stats.EquipmentDown)
	assert.Equal(t, 1, stats.Scrapped)
	assert.Equal(t, 1, cache.sets)

	// Second read is served from the cache, no recompute write.
	again, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats, again)
	assert.Equal(t, 1, cache.sets)
}

func TestDashboardStatsInvalidation(t *testing.T) {
	_, maintenanceRepo, _, _ := newTestMaintenanceService()
	cache := newFakeCache()
	svc := NewDashboardService(maintenanceRepo, &fakeDashboardRepo{}, cache, time.Minute, zap.NewNop())

	ctx := context.Background()
	_, err := svc.GetStats(ctx)
	require.NoError(t, err)
	_, cached := cache.data[constants.CacheKeyDashboardStats]
	assert.True(t, cached)

	svc.InvalidateStats(ctx)
	_, cached = cache.data[constants.CacheKeyDashboardStats]
	assert.False(t, cached)
}

func TestDashboardStatsSurvivesCorruptCacheEntry(t *testing.T) {
	_, maintenanceRepo, _, _ := newTestMaintenanceService()
	cache := newFakeCache()
	cache.data[constants.CacheKeyDashboardStats] = "{not json"

	svc := NewDashboardService(maintenanceRepo, &fakeDashboardRepo{}, cache, time.Minute, zap.NewNop())

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, stats)
}
