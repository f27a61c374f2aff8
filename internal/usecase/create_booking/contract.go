package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/integrations/userservice"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/capacity"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
}

// CapacityGuard выполняет операции над емкостью слота с повторами
type CapacityGuard interface {
	Run(ctx context.Context, op capacity.Op) error
}

// Catalogue каталог услуг
type Catalogue interface {
	Find(name string) (domain.Service, bool)
}

// SettingsProvider источник действующих настроек бизнеса
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.BusinessSettings, error)
}

// BayAssigner определяет бокс, смену и цикл для нового бронирования
type BayAssigner interface {
	Assign(label types.SlotLabel, ordinal int) *domain.BayAssignment
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetVehicleWithGracefulDegradation(ctx context.Context, userID, vehicleID string) (*userservice.Vehicle, error)
}

// Metrics интерфейс счетчиков журнала
type Metrics interface {
	BookingCreated(premium bool)
	SlotFull(premium bool)
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
