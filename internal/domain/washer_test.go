package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWasherAvailability(t *testing.T) {
	for _, s := range []string{"On Work", "On Break", "Off Duty"} {
		a, err := ParseWasherAvailability(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, string(a))
	}

	for _, s := range []string{"", "on work", "Busy"} {
		_, err := ParseWasherAvailability(s)
		assert.ErrorIs(t, err, ErrInvalidAvailability, s)
	}
}

func TestWasher_IsActiveAndHasBooking(t *testing.T) {
	w := &Washer{Availability: WasherOnWork, AssignedBookings: []string{"b1"}}
	assert.True(t, w.IsActive())
	assert.True(t, w.HasBooking("b1"))
	assert.False(t, w.HasBooking("b2"))

	w.Availability = WasherOnBreak
	assert.False(t, w.IsActive())
}
