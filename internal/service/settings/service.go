package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/settings/models"
)

// Service сервис настроек бизнеса
type Service struct {
	repo   SettingsRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Current возвращает действующие настройки
// Пока настройки не сохранялись, действуют значения по умолчанию
func (s *Service) Current(ctx context.Context) (*domain.BusinessSettings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSettingsNotFound) {
			defaults := domain.DefaultSettings()
			return &defaults, nil
		}
		s.logger.Error("Settings: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}
	return current, nil
}

// Get возвращает настройки для API
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomain(current), nil
}

// Update частично обновляет настройки
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating business settings")

	// 1. Получаем текущие настройки
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Применяем изменения
	if req.BookingCutoffHours != nil {
		current.BookingCutoffHours = *req.BookingCutoffHours
	}
	if req.MaxAdvanceBookingDays != nil {
		current.MaxAdvanceBookingDays = *req.MaxAdvanceBookingDays
	}
	if req.ClosedWeekdays != nil {
		weekdays := make([]time.Weekday, 0, len(*req.ClosedWeekdays))
		for _, wd := range *req.ClosedWeekdays {
			weekdays = append(weekdays, time.Weekday(wd))
		}
		current.ClosedWeekdays = weekdays
	}
	if req.PaymentMethods != nil {
		methods := make([]string, 0, len(*req.PaymentMethods))
		for _, m := range *req.PaymentMethods {
			methods = append(methods, strings.TrimSpace(m))
		}
		current.PaymentMethods = methods
	}

	// 3. Валидация
	if err := validateSettings(current); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}

	// 4. Сохраняем
	if err := s.repo.Upsert(ctx, current); err != nil {
		s.logger.Error("UpdateSettings: failed to save settings: %v", err)
		return nil, fmt.Errorf("%w: failed to save settings: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: settings saved")
	return models.FromDomain(current), nil
}

func validateSettings(s *domain.BusinessSettings) error {
	if s.BookingCutoffHours < 0 {
		return fmt.Errorf("%w: bookingCutoffHours must not be negative", ErrInvalidInput)
	}
	if s.MaxAdvanceBookingDays < 0 {
		return fmt.Errorf("%w: maxAdvanceBookingDays must not be negative", ErrInvalidInput)
	}
	seen := make(map[time.Weekday]struct{}, len(s.ClosedWeekdays))
	for _, wd := range s.ClosedWeekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range 0..6", ErrInvalidInput, wd)
		}
		if _, ok := seen[wd]; ok {
			return fmt.Errorf("%w: duplicate weekday %d", ErrInvalidInput, wd)
		}
		seen[wd] = struct{}{}
	}
	if len(s.PaymentMethods) == 0 {
		return fmt.Errorf("%w: at least one payment method is required", ErrInvalidInput)
	}
	for _, m := range s.PaymentMethods {
		if m == "" {
			return fmt.Errorf("%w: empty payment method", ErrInvalidInput)
		}
	}
	return nil
}
