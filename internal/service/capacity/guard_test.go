package capacity

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

var (
	testDate  = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	testLabel = types.MustParseSlotLabel("09:00 AM")
)

// conflictingDays проигрывает первые n условных обновлений
type conflictingDays struct {
	*memory.Store
	failures int32
}

func (c *conflictingDays) UpdateSlots(ctx context.Context, day *domain.DayAvailability) error {
	if atomic.AddInt32(&c.failures, -1) >= 0 {
		return storage.ErrVersionConflict
	}
	return c.Store.UpdateSlots(ctx, day)
}

type countingMetrics struct {
	conflicts  int
	contention int
}

func (m *countingMetrics) VersionConflict(string) { m.conflicts++ }
func (m *countingMetrics) Contention(string)      { m.contention++ }

type recordingCache struct {
	invalidated []time.Time
	ctxErrs     []error
}

func (c *recordingCache) Invalidate(ctx context.Context, date time.Time) error {
	c.invalidated = append(c.invalidated, date)
	c.ctxErrs = append(c.ctxErrs, ctx.Err())
	return nil
}

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	day, err := domain.NewDay(testDate, []domain.TimeSlot{
		{Label: testLabel, MaxRegular: 1, MaxPremium: 1},
	})
	require.NoError(t, err)
	require.NoError(t, store.SeedDay(context.Background(), day))
}

func reserveOp(committed *int) Op {
	return Op{
		Name:   "reserve",
		Locate: At(testDate, testLabel),
		Apply:  func(slot *domain.TimeSlot) error { return slot.Reserve(false) },
		Commit: func(context.Context, domain.TimeSlot) error {
			*committed++
			return nil
		},
	}
}

func TestGuard_Run_Success(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	cache := &recordingCache{}
	guard := NewGuard(store, store, cache, nil, 3, logger.Nop())

	committed := 0
	require.NoError(t, guard.Run(context.Background(), reserveOp(&committed)))

	day, err := store.GetDay(context.Background(), testDate)
	require.NoError(t, err)
	slot, _ := day.Slot(testLabel)
	assert.Equal(t, 1, slot.CurrentRegular)
	assert.Equal(t, int64(2), day.Version)
	assert.Equal(t, 1, committed)
	assert.Equal(t, []time.Time{testDate}, cache.invalidated)
}

func TestGuard_Run_SlotNotFound(t *testing.T) {
	store := memory.NewStore()
	guard := NewGuard(store, store, nil, nil, 3, logger.Nop())

	committed := 0
	err := guard.Run(context.Background(), reserveOp(&committed))
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.Zero(t, committed)
}

func TestGuard_Run_ApplyErrorIsReturned(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	guard := NewGuard(store, store, nil, nil, 3, logger.Nop())

	committed := 0
	require.NoError(t, guard.Run(context.Background(), reserveOp(&committed)))
	err := guard.Run(context.Background(), reserveOp(&committed))
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, 1, committed)
}

func TestGuard_Run_RetriesOnConflict(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	days := &conflictingDays{Store: store, failures: 2}
	m := &countingMetrics{}
	guard := NewGuard(days, store, nil, m, 3, logger.Nop())

	committed := 0
	require.NoError(t, guard.Run(context.Background(), reserveOp(&committed)))
	assert.Equal(t, 2, m.conflicts)
	assert.Zero(t, m.contention)
	assert.Equal(t, 1, committed)
}

func TestGuard_Run_Contention(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	days := &conflictingDays{Store: store, failures: 100}
	m := &countingMetrics{}
	guard := NewGuard(days, store, nil, m, 3, logger.Nop())

	committed := 0
	err := guard.Run(context.Background(), reserveOp(&committed))
	assert.ErrorIs(t, err, ErrContention)
	assert.Equal(t, 3, m.conflicts)
	assert.Equal(t, 1, m.contention)
	assert.Zero(t, committed)

	day, err := store.GetDay(context.Background(), testDate)
	require.NoError(t, err)
	slot, _ := day.Slot(testLabel)
	assert.Zero(t, slot.CurrentRegular)
}

func TestGuard_Run_SkipMissingSlot(t *testing.T) {
	store := memory.NewStore()
	guard := NewGuard(store, store, nil, nil, 3, logger.Nop())

	var got domain.TimeSlot
	err := guard.Run(context.Background(), Op{
		Name:            "release",
		Locate:          At(testDate, testLabel),
		Apply:           func(*domain.TimeSlot) error { return errors.New("must not be called") },
		Commit:          func(_ context.Context, before domain.TimeSlot) error { got = before; return nil },
		SkipMissingSlot: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TimeSlot{}, got)
}

func TestGuard_Run_CancelledContext(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	guard := NewGuard(store, store, nil, nil, 3, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	committed := 0
	err := guard.Run(ctx, reserveOp(&committed))
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Zero(t, committed)
}

func TestGuard_Run_InvalidatesAfterCallerCancel(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	cache := &recordingCache{}
	guard := NewGuard(store, store, cache, nil, 3, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := Op{
		Name:   "reserve",
		Locate: At(testDate, testLabel),
		Apply:  func(slot *domain.TimeSlot) error { return slot.Reserve(false) },
		Commit: func(context.Context, domain.TimeSlot) error {
			// клиент ушел сразу после фиксации
			cancel()
			return nil
		},
	}
	require.NoError(t, guard.Run(ctx, op))

	require.Equal(t, []time.Time{testDate}, cache.invalidated)
	assert.NoError(t, cache.ctxErrs[0])
}
