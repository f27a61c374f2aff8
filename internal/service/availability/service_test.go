package availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/availability/models"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/settings"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/shifts"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

// countingDays считает обращения к ListDays
type countingDays struct {
	*memory.Store
	listCalls int
}

func (c *countingDays) ListDays(ctx context.Context, from, to time.Time) ([]*domain.DayAvailability, error) {
	c.listCalls++
	return c.Store.ListDays(ctx, from, to)
}

func newService(store DayRepository, settingsStore *memory.Store) *Service {
	return NewService(
		store,
		nil,
		settings.NewService(settingsStore, logger.Nop()),
		shifts.Default(),
		domain.DefaultPremiumPerSlot,
		logger.Nop(),
	)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_SeedDay_GetDay(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newService(store, store)

	slots := []domain.TimeSlot{
		{Label: types.MustParseSlotLabel("10:00 AM"), MaxRegular: 3, MaxPremium: 1},
		{Label: types.MustParseSlotLabel("09:00 AM"), MaxRegular: 3, MaxPremium: 1},
	}

	seeded, err := svc.SeedDay(ctx, date(2025, 1, 2), slots)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seeded.Version)

	got, err := svc.GetDay(ctx, date(2025, 1, 2))
	require.NoError(t, err)
	require.Len(t, got.Slots, 2)
	assert.Equal(t, types.SlotLabel("09:00 AM"), got.Slots[0].Label)
	assert.Equal(t, types.SlotLabel("10:00 AM"), got.Slots[1].Label)

	reseeded, err := svc.SeedDay(ctx, date(2025, 1, 2), slots[:1])
	require.NoError(t, err)
	assert.Equal(t, int64(2), reseeded.Version)
}

func TestService_SeedDay_Invalid(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store, store)

	_, err := svc.SeedDay(context.Background(), date(2025, 1, 2), []domain.TimeSlot{
		{Label: types.MustParseSlotLabel("09:00 AM"), MaxRegular: 1, CurrentRegular: 2},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetDay_NotFound(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store, store)

	_, err := svc.GetDay(context.Background(), date(2025, 1, 2))
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestService_DeleteDay(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newService(store, store)

	_, err := svc.SeedDay(ctx, date(2025, 1, 2), nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDay(ctx, date(2025, 1, 2)))
	assert.ErrorIs(t, svc.DeleteDay(ctx, date(2025, 1, 2)), ErrDayNotFound)
}

func TestService_SeedRange(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newService(store, store)

	// 2025-01-04 суббота, 2025-01-05 воскресенье
	res, err := svc.SeedRange(ctx, &models.SeedRangeRequest{From: date(2025, 1, 4), To: date(2025, 1, 6)})
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2025, 1, 4), date(2025, 1, 6)}, res.Seeded)
	assert.Equal(t, []time.Time{date(2025, 1, 5)}, res.Closed)

	sunday, err := store.GetDay(ctx, date(2025, 1, 5))
	require.NoError(t, err)
	assert.Empty(t, sunday.Slots)
	assert.False(t, sunday.IsOpen())

	monday, err := store.GetDay(ctx, date(2025, 1, 6))
	require.NoError(t, err)
	assert.Len(t, monday.Slots, len(shifts.Default().OperationalSlots()))
	for _, slot := range monday.Slots {
		assert.Equal(t, domain.DefaultPremiumPerSlot, slot.MaxPremium)
	}

	again, err := svc.SeedRange(ctx, &models.SeedRangeRequest{From: date(2025, 1, 4), To: date(2025, 1, 6)})
	require.NoError(t, err)
	assert.Len(t, again.Skipped, 3)
	assert.Empty(t, again.Seeded)
}

// bookDuringOverwrite фиксирует бронирование перед первой записью слотов сервисом
type bookDuringOverwrite struct {
	*memory.Store
	label  types.SlotLabel
	booked bool
}

func (b *bookDuringOverwrite) UpdateSlots(ctx context.Context, day *domain.DayAvailability) error {
	if !b.booked {
		b.booked = true
		current, err := b.Store.GetDay(ctx, day.Date)
		if err != nil {
			return err
		}
		slot, ok := current.Slot(b.label)
		if !ok {
			return fmt.Errorf("slot %s not found", b.label)
		}
		if err := slot.Reserve(false); err != nil {
			return err
		}
		if err := b.Store.UpdateSlots(ctx, current); err != nil {
			return err
		}
	}
	return b.Store.UpdateSlots(ctx, day)
}

func TestService_SeedRange_OverwriteKeepsBookedDays(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newService(store, store)

	_, err := svc.SeedRange(ctx, &models.SeedRangeRequest{From: date(2025, 1, 6), To: date(2025, 1, 7)})
	require.NoError(t, err)

	// на 2025-01-07 одно место занято
	booked, err := store.GetDay(ctx, date(2025, 1, 7))
	require.NoError(t, err)
	label := booked.Slots[0].Label
	require.NoError(t, booked.Slots[0].Reserve(false))
	require.NoError(t, store.UpdateSlots(ctx, booked))

	res, err := svc.SeedRange(ctx, &models.SeedRangeRequest{From: date(2025, 1, 6), To: date(2025, 1, 7), Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2025, 1, 6)}, res.Seeded)
	assert.Equal(t, []time.Time{date(2025, 1, 7)}, res.Held)

	idle, err := store.GetDay(ctx, date(2025, 1, 6))
	require.NoError(t, err)
	assert.Equal(t, int64(2), idle.Version)

	kept, err := store.GetDay(ctx, date(2025, 1, 7))
	require.NoError(t, err)
	assert.Equal(t, booked.Version, kept.Version)
	slot, ok := kept.Slot(label)
	require.True(t, ok)
	assert.Equal(t, 1, slot.CurrentRegular)
}

func TestService_SeedRange_OverwriteLosesToConcurrentBooking(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newService(store, store)

	_, err := svc.SeedRange(ctx, &models.SeedRangeRequest{From: date(2025, 1, 6), To: date(2025, 1, 6)})
	require.NoError(t, err)
	day, err := store.GetDay(ctx, date(2025, 1, 6))
	require.NoError(t, err)
	label := day.Slots[0].Label

	racing := &bookDuringOverwrite{Store: store, label: label}
	svc = newService(racing, store)

	res, err := svc.SeedRange(ctx, &models.SeedRangeRequest{From: date(2025, 1, 6), To: date(2025, 1, 6), Overwrite: true})
	require.NoError(t, err)
	assert.Empty(t, res.Seeded)
	assert.Equal(t, []time.Time{date(2025, 1, 6)}, res.Held)

	after, err := store.GetDay(ctx, date(2025, 1, 6))
	require.NoError(t, err)
	slot, ok := after.Slot(label)
	require.True(t, ok)
	assert.Equal(t, 1, slot.CurrentRegular)
}

func TestService_SeedRange_InvalidRange(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store, store)

	_, err := svc.SeedRange(context.Background(), &models.SeedRangeRequest{From: date(2025, 1, 6), To: date(2025, 1, 4)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListOpenDates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newService(store, store)
	label := types.MustParseSlotLabel("09:00 AM")

	_, err := svc.SeedDay(ctx, date(2025, 1, 2), []domain.TimeSlot{{Label: label, MaxRegular: 1, MaxPremium: 0}})
	require.NoError(t, err)
	_, err = svc.SeedDay(ctx, date(2025, 1, 3), []domain.TimeSlot{{Label: label, MaxRegular: 1, CurrentRegular: 1}})
	require.NoError(t, err)
	_, err = svc.SeedDay(ctx, date(2025, 1, 4), nil)
	require.NoError(t, err)
	_, err = svc.SeedDay(ctx, date(2025, 2, 20), []domain.TimeSlot{{Label: label, MaxRegular: 0, MaxPremium: 1}})
	require.NoError(t, err)

	var open []time.Time
	for d, err := range svc.ListOpenDates(ctx, date(2025, 1, 1), date(2025, 3, 1)) {
		require.NoError(t, err)
		open = append(open, d)
	}

	assert.Equal(t, []time.Time{date(2025, 1, 2), date(2025, 2, 20)}, open)
}

func TestService_ListOpenDates_StopsEarly(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	days := &countingDays{Store: store}
	svc := newService(days, store)
	label := types.MustParseSlotLabel("09:00 AM")

	_, err := svc.SeedDay(ctx, date(2025, 1, 2), []domain.TimeSlot{{Label: label, MaxRegular: 1}})
	require.NoError(t, err)
	_, err = svc.SeedDay(ctx, date(2025, 6, 2), []domain.TimeSlot{{Label: label, MaxRegular: 1}})
	require.NoError(t, err)

	for d, err := range svc.ListOpenDates(ctx, date(2025, 1, 1), date(2025, 12, 31)) {
		require.NoError(t, err)
		assert.Equal(t, date(2025, 1, 2), d)
		break
	}

	assert.Equal(t, 1, days.listCalls)
}

func TestService_ListOpenDates_NotCached(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newService(store, store)
	label := types.MustParseSlotLabel("09:00 AM")

	_, err := svc.SeedDay(ctx, date(2025, 1, 2), []domain.TimeSlot{{Label: label, MaxRegular: 1}})
	require.NoError(t, err)

	seq := svc.ListOpenDates(ctx, date(2025, 1, 1), date(2025, 1, 31))
	count := func() int {
		n := 0
		for _, err := range seq {
			require.NoError(t, err)
			n++
		}
		return n
	}
	assert.Equal(t, 1, count())

	_, err = svc.SeedDay(ctx, date(2025, 1, 2), []domain.TimeSlot{{Label: label, MaxRegular: 1, CurrentRegular: 1}})
	require.NoError(t, err)
	assert.Equal(t, 0, count())
}

func TestService_ListOpenDates_InvalidRange(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store, store)

	for _, err := range svc.ListOpenDates(context.Background(), date(2025, 2, 1), date(2025, 1, 1)) {
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}
