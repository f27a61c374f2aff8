package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlot(maxRegular, currentRegular, maxPremium, currentPremium int) *TimeSlot {
	return &TimeSlot{
		Label:          "09:00 AM",
		MaxRegular:     maxRegular,
		CurrentRegular: currentRegular,
		MaxPremium:     maxPremium,
		CurrentPremium: currentPremium,
	}
}

func TestTimeSlot_IsOpen(t *testing.T) {
	tests := []struct {
		name string
		slot *TimeSlot
		want bool
	}{
		{name: "empty slot", slot: newSlot(3, 0, 1, 0), want: true},
		{name: "regular full, premium free", slot: newSlot(3, 3, 1, 0), want: true},
		{name: "premium full, regular free", slot: newSlot(3, 2, 1, 1), want: true},
		{name: "both full", slot: newSlot(3, 3, 1, 1), want: false},
		{name: "zero capacity", slot: newSlot(0, 0, 0, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.IsOpen())
		})
	}
}

func TestTimeSlot_RegularFullAcceptsPremium(t *testing.T) {
	slot := newSlot(3, 3, 1, 0)

	assert.False(t, slot.CanReserve(false))
	assert.ErrorIs(t, slot.Reserve(false), ErrCapacityExceeded)
	assert.Equal(t, 3, slot.CurrentRegular)

	require.NoError(t, slot.Reserve(true))
	assert.Equal(t, 1, slot.CurrentPremium)
	assert.False(t, slot.IsOpen())
}

func TestTimeSlot_ReleaseFloorsAtZero(t *testing.T) {
	slot := newSlot(3, 1, 1, 0)

	slot.Release(false)
	slot.Release(false)
	slot.Release(true)

	assert.Equal(t, 0, slot.CurrentRegular)
	assert.Equal(t, 0, slot.CurrentPremium)
	assert.NoError(t, slot.Validate())
}

func TestTimeSlot_CountersStayInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	slot := newSlot(3, 0, 2, 0)

	for i := 0; i < 5000; i++ {
		premium := rng.Intn(2) == 0
		if rng.Intn(3) == 0 {
			slot.Release(premium)
		} else {
			_ = slot.Reserve(premium)
		}
		require.NoError(t, slot.Validate(), "step %d", i)
	}
}

func TestTimeSlot_Validate(t *testing.T) {
	assert.NoError(t, newSlot(3, 3, 1, 1).Validate())
	assert.ErrorIs(t, newSlot(3, 4, 1, 0).Validate(), ErrInvalidSlot)
	assert.ErrorIs(t, newSlot(3, 0, 1, -1).Validate(), ErrInvalidSlot)
	assert.ErrorIs(t, newSlot(-1, 0, 0, 0).Validate(), ErrInvalidSlot)

	bad := newSlot(3, 0, 1, 0)
	bad.Label = "9am"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidSlot)
}
