package export_bookings

import (
	"context"
	"io"
	"time"
)

type ReportsService interface {
	ExportBookings(ctx context.Context, date time.Time, w io.Writer) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
