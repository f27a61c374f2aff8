package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/shifts"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

// DayReader чтение доступности дня (через кеш)
type DayReader interface {
	GetDay(ctx context.Context, date time.Time) (*domain.DayAvailability, error)
}

// SettingsProvider источник действующих настроек бизнеса
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.BusinessSettings, error)
}

// ShiftSchedule расписание смен для аннотации слотов
type ShiftSchedule interface {
	CycleForTime(label types.SlotLabel) (shifts.Cycle, bool)
	TeamForTime(label types.SlotLabel) (shifts.Team, bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
