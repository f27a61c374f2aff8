package list_staff

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/staff/models"
)

type StaffService interface {
	List(ctx context.Context, availability *string) (*models.ListWashersResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
