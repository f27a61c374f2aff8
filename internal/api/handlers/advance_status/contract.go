package advance_status

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/bookings/models"
)

type BookingService interface {
	AdvanceStatus(ctx context.Context, id string, req *models.AdvanceStatusRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
