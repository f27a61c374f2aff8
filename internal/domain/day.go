package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

// DayAvailability holds the slots of one calendar date
// Version is the concurrency token checked by conditional updates
type DayAvailability struct {
	Date      time.Time
	Slots     []TimeSlot
	Version   int64
	UpdatedAt time.Time
}

// NewDay builds a day with its slots ordered by time of day
func NewDay(date time.Time, slots []TimeSlot) (*DayAvailability, error) {
	day := &DayAvailability{
		Date:  DateOnly(date),
		Slots: append([]TimeSlot(nil), slots...),
	}
	day.SortSlots()
	if err := day.Validate(); err != nil {
		return nil, err
	}
	return day, nil
}

// Slot returns the slot with the given label
func (d *DayAvailability) Slot(label types.SlotLabel) (*TimeSlot, bool) {
	for i := range d.Slots {
		if d.Slots[i].Label == label {
			return &d.Slots[i], true
		}
	}
	return nil, false
}

// IsOpen returns true if at least one slot is open; an empty day is closed
func (d *DayAvailability) IsOpen() bool {
	for i := range d.Slots {
		if d.Slots[i].IsOpen() {
			return true
		}
	}
	return false
}

// HoldsBookings returns true if any slot has taken units
func (d *DayAvailability) HoldsBookings() bool {
	for i := range d.Slots {
		if d.Slots[i].Occupied() > 0 {
			return true
		}
	}
	return false
}

// SortSlots orders slots chronologically
func (d *DayAvailability) SortSlots() {
	sort.SliceStable(d.Slots, func(i, j int) bool {
		return d.Slots[i].Label.MustMinutes() < d.Slots[j].Label.MustMinutes()
	})
}

// Validate checks every slot and label uniqueness
func (d *DayAvailability) Validate() error {
	seen := make(map[types.SlotLabel]struct{}, len(d.Slots))
	for i := range d.Slots {
		if err := d.Slots[i].Validate(); err != nil {
			return err
		}
		if _, ok := seen[d.Slots[i].Label]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateSlot, d.Slots[i].Label)
		}
		seen[d.Slots[i].Label] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy
func (d *DayAvailability) Clone() *DayAvailability {
	c := *d
	c.Slots = append([]TimeSlot(nil), d.Slots...)
	return &c
}

// DateKey returns the date in DateFormat
func (d *DayAvailability) DateKey() string {
	return d.Date.Format(DateFormat)
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
