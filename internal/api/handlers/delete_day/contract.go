package delete_day

import (
	"context"
	"time"
)

type AvailabilityService interface {
	DeleteDay(ctx context.Context, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
