package domain

import (
	"strings"
	"time"
)

// BusinessSettings editable business rules
type BusinessSettings struct {
	BookingCutoffHours    int
	MaxAdvanceBookingDays int // 0 = unlimited
	ClosedWeekdays        []time.Weekday
	PaymentMethods        []string
	UpdatedAt             time.Time
}

// DefaultSettings returns settings used until staff save their own
func DefaultSettings() BusinessSettings {
	return BusinessSettings{
		BookingCutoffHours:    DefaultBookingCutoffHours,
		MaxAdvanceBookingDays: DefaultMaxAdvanceBookingDays,
		ClosedWeekdays:        []time.Weekday{time.Sunday},
		PaymentMethods:        []string{"GCash", "Card", "Maya"},
	}
}

// IsClosedOn returns true if the business is closed on the date's weekday
func (s *BusinessSettings) IsClosedOn(date time.Time) bool {
	for _, wd := range s.ClosedWeekdays {
		if date.Weekday() == wd {
			return true
		}
	}
	return false
}

// AcceptsPayment returns the canonical method name if it is accepted
func (s *BusinessSettings) AcceptsPayment(method string) (string, bool) {
	for _, m := range s.PaymentMethods {
		if strings.EqualFold(m, strings.TrimSpace(method)) {
			return m, true
		}
	}
	return "", false
}

// HasAdvanceBookingLimit returns true if there's a limit on how far ahead bookings can be made
func (s *BusinessSettings) HasAdvanceBookingLimit() bool {
	return s.MaxAdvanceBookingDays > 0
}
