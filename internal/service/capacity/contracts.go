package capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
)

// DayRepository интерфейс хранилища дней
type DayRepository interface {
	GetDay(ctx context.Context, date time.Time) (*domain.DayAvailability, error)
	UpdateSlots(ctx context.Context, day *domain.DayAvailability) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cache интерфейс кеша доступности (может быть nil)
type Cache interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// Metrics интерфейс счетчиков журнала
type Metrics interface {
	VersionConflict(operation string)
	Contention(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
