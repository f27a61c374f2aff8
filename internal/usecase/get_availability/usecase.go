package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	availabilitySvc "github.com/m04kA/SMC-AvailabilityLedger/internal/service/availability"
)

// UseCase use case для получения доступности дня
type UseCase struct {
	days         DayReader
	settings     SettingsProvider
	schedule     ShiftSchedule
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	days DayReader,
	settings SettingsProvider,
	schedule ShiftSchedule,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		days:         days,
		settings:     settings,
		schedule:     schedule,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступности дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем день
	day, err := uc.days.GetDay(ctx, req.Date)
	if err != nil {
		if errors.Is(err, availabilitySvc.ErrDayNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrDayNotFound, req.Date.Format(domain.DateFormat))
		}
		uc.logger.Error("GetAvailability: failed to get day %s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get day: %v", ErrInternal, err)
	}

	// 3. Получаем настройки (отсечка)
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 4. Строим слоты
	now := uc.timeProvider.Now().In(uc.location)

	return &Response{
		Date:    day.Date,
		Version: day.Version,
		IsOpen:  day.IsOpen(),
		Slots:   buildSlots(day, uc.schedule, now, settings.BookingCutoffHours),
	}, nil
}
