package domain

import "time"

// Ledger defaults
const (
	DefaultMaxAttempts    = 3
	DefaultPremiumPerSlot = 1
	DefaultTimezone       = "UTC"

	CacheInvalidateTimeout = 2 * time.Second
)

// Business defaults
const (
	DefaultBookingCutoffHours    = 2
	DefaultMaxAdvanceBookingDays = 90
	DefaultRecentBookingsLimit   = 10
)

// Business validation constants
const (
	MinRating           = 1
	MaxRating           = 5
	MaxReviewLength     = 1000
	MaxPromoCodeLength  = 64
	MaxRecentLimit      = 100
	MaxSeedRangeDays    = 366
	MaxOpenDatesRange   = 366
	MaxWasherNameLength = 100
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
