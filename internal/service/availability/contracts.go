package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
)

// DayRepository интерфейс хранилища дней
type DayRepository interface {
	GetDay(ctx context.Context, date time.Time) (*domain.DayAvailability, error)
	ListDays(ctx context.Context, from, to time.Time) ([]*domain.DayAvailability, error)
	SeedDay(ctx context.Context, day *domain.DayAvailability) error
	UpdateSlots(ctx context.Context, day *domain.DayAvailability) error
	DeleteDay(ctx context.Context, date time.Time) error
}

// Cache интерфейс кеша доступности
type Cache interface {
	Get(ctx context.Context, date time.Time) (*domain.DayAvailability, error)
	Generation(ctx context.Context, date time.Time) (int64, error)
	Set(ctx context.Context, day *domain.DayAvailability, generation int64) (bool, error)
	Invalidate(ctx context.Context, date time.Time) error
}

// SettingsProvider источник действующих настроек бизнеса
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.BusinessSettings, error)
}

// SlotTemplate шаблон слотов рабочего дня
type SlotTemplate interface {
	DaySlots(premiumPerSlot int) []domain.TimeSlot
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
