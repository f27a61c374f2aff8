package list_open_dates

import (
	"context"
	"iter"
	"time"
)

type AvailabilityService interface {
	ListOpenDates(ctx context.Context, from, to time.Time) iter.Seq2[time.Time, error]
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
