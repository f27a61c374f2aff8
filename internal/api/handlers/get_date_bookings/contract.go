package get_date_bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/bookings/models"
)

type ReportsService interface {
	BookingsForDate(ctx context.Context, date time.Time) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
