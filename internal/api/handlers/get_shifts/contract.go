package get_shifts

import "github.com/m04kA/SMC-AvailabilityLedger/internal/shifts"

type ShiftSchedule interface {
	Summary() shifts.Summary
}
