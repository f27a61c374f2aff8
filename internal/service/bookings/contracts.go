package bookings

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/capacity"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error
	SetRating(ctx context.Context, id string, rating int, review *string) error
	AssignWasher(ctx context.Context, id string, washerID string) error
}

// WasherRepository интерфейс репозитория сотрудников
type WasherRepository interface {
	GetWasher(ctx context.Context, id string) (*domain.Washer, error)
	AddWasherBooking(ctx context.Context, id, bookingID string) error
}

// CapacityGuard выполняет операции над емкостью слота с повторами
type CapacityGuard interface {
	Run(ctx context.Context, op capacity.Op) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс счетчиков журнала
type Metrics interface {
	BookingCancelled()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
