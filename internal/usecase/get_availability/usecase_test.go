package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/settings"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/shifts"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func newUseCase(t *testing.T, now time.Time) (*UseCase, *availability.Service) {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	schedule := shifts.Default()
	settingsSvc := settings.NewService(store, log)
	days := availability.NewService(store, nil, settingsSvc, schedule, 1, log)
	uc := NewUseCase(days, settingsSvc, schedule, time.UTC, log).WithTimeProvider(fixedTime{t: now})
	return uc, days
}

func TestExecute_AnnotatesSlots(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	uc, days := newUseCase(t, time.Date(2025, 1, 2, 7, 0, 0, 0, time.UTC))

	_, err := days.SeedDay(ctx, date, []domain.TimeSlot{
		{Label: types.MustParseSlotLabel("08:00 AM"), MaxRegular: 3, CurrentRegular: 1, MaxPremium: 1},
		{Label: types.MustParseSlotLabel("09:30 AM"), MaxRegular: 3, CurrentRegular: 3, MaxPremium: 1, CurrentPremium: 1},
		{Label: types.MustParseSlotLabel("12:00 PM"), MaxRegular: 3, MaxPremium: 1},
	})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{Date: date})
	require.NoError(t, err)
	assert.True(t, resp.IsOpen)
	require.Len(t, resp.Slots, 3)

	eight := resp.Slots[0]
	assert.Equal(t, "08:00 AM", eight.Time)
	assert.Equal(t, 2, eight.RemainingRegular)
	assert.Equal(t, "W4-W6", eight.CycleCode)
	assert.Equal(t, "AM Team", eight.Team)
	assert.Equal(t, []int{1, 2, 3}, eight.Bays)
	assert.True(t, eight.IsOpen)
	assert.False(t, eight.Bookable, "inside the two hour cutoff")

	full := resp.Slots[1]
	assert.False(t, full.IsOpen)
	assert.False(t, full.Bookable)

	noon := resp.Slots[2]
	assert.True(t, noon.Bookable)
}

func TestExecute_DayNotFound(t *testing.T) {
	uc, _ := newUseCase(t, time.Now())

	_, err := uc.Execute(context.Background(), &Request{Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestExecute_ClosedDay(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	uc, days := newUseCase(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := days.SeedDay(ctx, date, nil)
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{Date: date})
	require.NoError(t, err)
	assert.False(t, resp.IsOpen)
	assert.Empty(t, resp.Slots)
}
