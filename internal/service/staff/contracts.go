package staff

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
)

// WasherRepository интерфейс репозитория сотрудников
type WasherRepository interface {
	CreateWasher(ctx context.Context, w *domain.Washer) error
	GetWasher(ctx context.Context, id string) (*domain.Washer, error)
	ListWashers(ctx context.Context, availability *domain.WasherAvailability) ([]*domain.Washer, error)
	SetWasherAvailability(ctx context.Context, id string, availability domain.WasherAvailability) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
