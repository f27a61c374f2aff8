package domain

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

// TimeSlot is one bookable time of day with separate regular and premium pools
type TimeSlot struct {
	Label          types.SlotLabel `json:"label" bson:"label"`
	MaxRegular     int             `json:"maxRegular" bson:"maxRegular"`
	CurrentRegular int             `json:"currentRegular" bson:"currentRegular"`
	MaxPremium     int             `json:"maxPremium" bson:"maxPremium"`
	CurrentPremium int             `json:"currentPremium" bson:"currentPremium"`
}

// IsOpen returns true while either pool has room
func (s *TimeSlot) IsOpen() bool {
	return s.CurrentRegular < s.MaxRegular || s.CurrentPremium < s.MaxPremium
}

// CanReserve reports whether the pool selected by isPremium has room
func (s *TimeSlot) CanReserve(isPremium bool) bool {
	if isPremium {
		return s.CurrentPremium < s.MaxPremium
	}
	return s.CurrentRegular < s.MaxRegular
}

// Reserve takes one unit from the selected pool
func (s *TimeSlot) Reserve(isPremium bool) error {
	if !s.CanReserve(isPremium) {
		return fmt.Errorf("%w: slot %s premium=%t", ErrCapacityExceeded, s.Label, isPremium)
	}
	if isPremium {
		s.CurrentPremium++
	} else {
		s.CurrentRegular++
	}
	return nil
}

// Release returns one unit to the selected pool; it never drops below zero
func (s *TimeSlot) Release(isPremium bool) {
	if isPremium {
		if s.CurrentPremium > 0 {
			s.CurrentPremium--
		}
		return
	}
	if s.CurrentRegular > 0 {
		s.CurrentRegular--
	}
}

// Occupied returns the number of units taken across both pools
func (s *TimeSlot) Occupied() int {
	return s.CurrentRegular + s.CurrentPremium
}

// RemainingRegular returns free regular units
func (s *TimeSlot) RemainingRegular() int {
	return max(s.MaxRegular-s.CurrentRegular, 0)
}

// RemainingPremium returns free premium units
func (s *TimeSlot) RemainingPremium() int {
	return max(s.MaxPremium-s.CurrentPremium, 0)
}

// Validate checks the counter bounds
func (s *TimeSlot) Validate() error {
	if err := s.Label.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if s.MaxRegular < 0 || s.MaxPremium < 0 {
		return fmt.Errorf("%w: %s has negative capacity", ErrInvalidSlot, s.Label)
	}
	if s.CurrentRegular < 0 || s.CurrentRegular > s.MaxRegular {
		return fmt.Errorf("%w: %s regular %d/%d", ErrInvalidSlot, s.Label, s.CurrentRegular, s.MaxRegular)
	}
	if s.CurrentPremium < 0 || s.CurrentPremium > s.MaxPremium {
		return fmt.Errorf("%w: %s premium %d/%d", ErrInvalidSlot, s.Label, s.CurrentPremium, s.MaxPremium)
	}
	return nil
}
