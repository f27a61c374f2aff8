package assign_washer

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/bookings/models"
)

type BookingService interface {
	AssignWasher(ctx context.Context, id string, req *models.AssignWasherRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
