package seed_days

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/availability/models"
)

type AvailabilityService interface {
	SeedRange(ctx context.Context, req *models.SeedRangeRequest) (*models.SeedRangeResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
