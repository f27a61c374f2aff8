package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    SlotLabel
		wantErr bool
	}{
		{name: "padded", input: "09:00 AM", want: "09:00 AM"},
		{name: "unpadded", input: "6:30 AM", want: "06:30 AM"},
		{name: "lowercase", input: " 9:30 pm ", want: "09:30 PM"},
		{name: "midnight", input: "12:00 AM", want: "12:00 AM"},
		{name: "24h rejected", input: "14:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSlotLabel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSlotLabel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotLabel_Minutes(t *testing.T) {
	assert.Equal(t, 0, MustParseSlotLabel("12:00 AM").MustMinutes())
	assert.Equal(t, 12*60, MustParseSlotLabel("12:00 PM").MustMinutes())
	assert.Equal(t, 22*60+30, MustParseSlotLabel("10:30 PM").MustMinutes())
	assert.Equal(t, -1, SlotLabel("bogus").MustMinutes())
}

func TestSlotLabelFromMinutes(t *testing.T) {
	assert.Equal(t, SlotLabel("01:30 PM"), SlotLabelFromMinutes(13*60+30))
	assert.Equal(t, SlotLabel("12:15 AM"), SlotLabelFromMinutes(24*60+15))
}

func TestSlotLabel_On(t *testing.T) {
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	got, err := MustParseSlotLabel("4:00 PM").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 2, 16, 0, 0, 0, time.UTC), got)
}

func TestSlotLabel_Validate(t *testing.T) {
	assert.NoError(t, SlotLabel("09:00 AM").Validate())
	assert.Error(t, SlotLabel("9:00 AM").Validate())
}
