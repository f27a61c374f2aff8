package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

func TestNewDay_SortsAndValidates(t *testing.T) {
	date := time.Date(2025, 1, 2, 15, 4, 0, 0, time.UTC)

	day, err := NewDay(date, []TimeSlot{
		{Label: "01:30 PM", MaxRegular: 3},
		{Label: "12:00 AM", MaxRegular: 3},
		{Label: "09:30 AM", MaxRegular: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-02", day.DateKey())
	assert.Equal(t, []types.SlotLabel{"12:00 AM", "09:30 AM", "01:30 PM"},
		[]types.SlotLabel{day.Slots[0].Label, day.Slots[1].Label, day.Slots[2].Label})
}

func TestNewDay_DuplicateLabel(t *testing.T) {
	_, err := NewDay(time.Now(), []TimeSlot{
		{Label: "09:00 AM", MaxRegular: 3},
		{Label: "09:00 AM", MaxRegular: 2},
	})
	assert.ErrorIs(t, err, ErrDuplicateSlot)
}

func TestDayAvailability_IsOpen(t *testing.T) {
	empty := &DayAvailability{}
	assert.False(t, empty.IsOpen())

	full := &DayAvailability{Slots: []TimeSlot{{Label: "09:00 AM", MaxRegular: 1, CurrentRegular: 1}}}
	assert.False(t, full.IsOpen())

	full.Slots = append(full.Slots, TimeSlot{Label: "10:00 AM", MaxPremium: 1})
	assert.True(t, full.IsOpen())
}

func TestDayAvailability_CloneIsDeep(t *testing.T) {
	day := &DayAvailability{Slots: []TimeSlot{{Label: "09:00 AM", MaxRegular: 3}}, Version: 4}

	clone := day.Clone()
	slot, ok := clone.Slot("09:00 AM")
	require.True(t, ok)
	require.NoError(t, slot.Reserve(false))

	assert.Equal(t, 0, day.Slots[0].CurrentRegular)
	assert.Equal(t, 1, clone.Slots[0].CurrentRegular)
	assert.Equal(t, int64(4), clone.Version)

	_, ok = clone.Slot("11:00 AM")
	assert.False(t, ok)
}
