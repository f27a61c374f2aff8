package reports

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// WasherCounter считает сотрудников по доступности
type WasherCounter interface {
	CountWashers(ctx context.Context, availability domain.WasherAvailability) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
