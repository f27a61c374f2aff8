package domain

import "errors"

var (
	// ErrCapacityExceeded is returned when a reservation would exceed slot capacity
	ErrCapacityExceeded = errors.New("domain: slot capacity exceeded")

	// ErrInvalidTransition is returned for a status change the state machine forbids
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrInvalidSlot is returned when slot counters violate their bounds
	ErrInvalidSlot = errors.New("domain: invalid slot")

	// ErrDuplicateSlot is returned when a day holds two slots with the same label
	ErrDuplicateSlot = errors.New("domain: duplicate slot label")

	// ErrInvalidAvailability is returned for an unknown washer availability
	ErrInvalidAvailability = errors.New("domain: invalid washer availability")
)
