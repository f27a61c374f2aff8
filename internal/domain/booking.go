package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusOngoing   BookingStatus = "Ongoing"
	StatusCompleted BookingStatus = "Completed"
	StatusCancelled BookingStatus = "Cancelled"
)

// transitions allowed status changes; Completed and Cancelled are terminal
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending: {StatusOngoing, StatusCancelled},
	StatusOngoing: {StatusCompleted, StatusCancelled},
}

// ParseBookingStatus converts a string to BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case StatusPending, StatusOngoing, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, s)
}

// CanTransition reports whether from -> to is allowed
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// PaymentStatus status of the booking payment
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

// Payment info attached to a booking
type Payment struct {
	Method string
	Status PaymentStatus
	Amount float64
}

// BayAssignment is the shift annotation of a booking
type BayAssignment struct {
	Bay       int
	Team      string
	CycleCode string
}

// Booking represents a car wash booking
type Booking struct {
	ID        string
	UserID    string
	VehicleID string
	WasherID  *string

	// Denormalized service data
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int
	IsPremium       bool

	Date      time.Time
	TimeLabel types.SlotLabel
	Status    BookingStatus
	Payment   Payment

	PromoCode         *string
	LoyaltyPointsUsed int
	LicensePlate      *string

	Rating *int
	Review *string

	Assignment *BayAssignment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// HoldsCapacity returns true while the booking occupies a unit of its slot
func (b *Booking) HoldsCapacity() bool {
	return b.Status == StatusPending || b.Status == StatusOngoing
}

// CanBeRated returns true if a rating may be attached
func (b *Booking) CanBeRated() bool {
	return b.Status == StatusCompleted
}

// IsRated returns true if the booking already carries a rating
func (b *Booking) IsRated() bool {
	return b.Rating != nil
}

// BookingsFilter filter for listing bookings
type BookingsFilter struct {
	UserID *string
	Date   *time.Time
	Status *BookingStatus
	Limit  int
}

// DashboardStats aggregates for the staff dashboard
type DashboardStats struct {
	Date          time.Time
	TotalBookings int
	ByStatus      map[BookingStatus]int
	Revenue       float64
	AverageRating float64
	RatedBookings int
}

// ComputeStats builds dashboard stats for bookings of one date
// Revenue counts completed bookings only
func ComputeStats(date time.Time, bookings []*Booking) DashboardStats {
	stats := DashboardStats{
		Date:     DateOnly(date),
		ByStatus: make(map[BookingStatus]int),
	}

	ratingSum := 0
	for _, b := range bookings {
		stats.TotalBookings++
		stats.ByStatus[b.Status]++
		if b.Status == StatusCompleted {
			stats.Revenue += b.Payment.Amount
		}
		if b.Rating != nil {
			ratingSum += *b.Rating
			stats.RatedBookings++
		}
	}

	if stats.RatedBookings > 0 {
		stats.AverageRating = float64(ratingSum) / float64(stats.RatedBookings)
	}

	return stats
}
