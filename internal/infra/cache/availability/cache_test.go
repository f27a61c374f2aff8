package availability

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, ttl), mr
}

func testDay(t *testing.T) *domain.DayAvailability {
	t.Helper()
	day, err := domain.NewDay(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), []domain.TimeSlot{
		{Label: types.MustParseSlotLabel("09:00 AM"), MaxRegular: 3, CurrentRegular: 1, MaxPremium: 1},
	})
	require.NoError(t, err)
	day.Version = 4
	return day
}

func TestCache_SetGet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)
	day := testDay(t)

	stored, err := cache.Set(ctx, day, 0)
	require.NoError(t, err)
	assert.True(t, stored)

	got, err := cache.Get(ctx, day.Date)
	require.NoError(t, err)
	assert.Equal(t, day.Date, got.Date)
	assert.Equal(t, day.Slots, got.Slots)
	assert.Equal(t, int64(4), got.Version)
}

func TestCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	_, err := cache.Get(context.Background(), time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_TTLExpires(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, 30*time.Second)
	day := testDay(t)

	_, err := cache.Set(ctx, day, 0)
	require.NoError(t, err)
	mr.FastForward(31 * time.Second)

	_, err = cache.Get(ctx, day.Date)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)
	day := testDay(t)

	_, err := cache.Set(ctx, day, 0)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, day.Date))

	_, err = cache.Get(ctx, day.Date)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_ZeroTTLSkipsWrites(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, 0)
	day := testDay(t)

	stored, err := cache.Set(ctx, day, 0)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.Empty(t, mr.Keys())
}

func TestCache_StaleWriteAfterInvalidateIsDropped(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)
	stale := testDay(t)

	// читатель запомнил генерацию и прочитал версию 4
	gen, err := cache.Generation(ctx, stale.Date)
	require.NoError(t, err)
	assert.Zero(t, gen)

	// запись в журнал успела инвалидировать день
	require.NoError(t, cache.Invalidate(ctx, stale.Date))

	stored, err := cache.Set(ctx, stale, gen)
	require.NoError(t, err)
	assert.False(t, stored)

	_, err = cache.Get(ctx, stale.Date)
	assert.ErrorIs(t, err, ErrCacheMiss)

	// следующий читатель с актуальной генерацией кеширует свежий день
	fresh := testDay(t)
	fresh.Version = 5
	gen, err = cache.Generation(ctx, fresh.Date)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	stored, err = cache.Set(ctx, fresh, gen)
	require.NoError(t, err)
	assert.True(t, stored)

	got, err := cache.Get(ctx, fresh.Date)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Version)
}

func TestCache_GenerationOutlivesDayTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, 30*time.Second)
	day := testDay(t)

	require.NoError(t, cache.Invalidate(ctx, day.Date))
	mr.FastForward(time.Minute)

	gen, err := cache.Generation(ctx, day.Date)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	assert.True(t, mr.TTL(genKey(day.Date)) > 0)
}
