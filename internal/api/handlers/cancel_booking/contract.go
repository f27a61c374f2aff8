package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
