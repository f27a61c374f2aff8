package put_day

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
)

type AvailabilityService interface {
	SeedDay(ctx context.Context, date time.Time, slots []domain.TimeSlot) (*domain.DayAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
