package domain

import (
	"fmt"
	"slices"
	"time"
)

// WasherAvailability is the roster state of a washer
type WasherAvailability string

const (
	WasherOnWork  WasherAvailability = "On Work"
	WasherOnBreak WasherAvailability = "On Break"
	WasherOffDuty WasherAvailability = "Off Duty"
)

// ParseWasherAvailability converts a string to WasherAvailability
func ParseWasherAvailability(s string) (WasherAvailability, error) {
	switch a := WasherAvailability(s); a {
	case WasherOnWork, WasherOnBreak, WasherOffDuty:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAvailability, s)
}

// Washer is a staff member who can be assigned to bookings
type Washer struct {
	ID               string
	UserID           string
	Name             string
	Availability     WasherAvailability
	AssignedBookings []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive returns true while the washer is on shift
func (w *Washer) IsActive() bool {
	return w.Availability == WasherOnWork
}

// HasBooking reports whether the booking is already on the washer's list
func (w *Washer) HasBooking(bookingID string) bool {
	return slices.Contains(w.AssignedBookings, bookingID)
}
