package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	userClient "github.com/m04kA/SMC-AvailabilityLedger/internal/integrations/userservice"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/bookings/models"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/capacity"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/ptr"
)

const operationName = "create_booking"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	guard        CapacityGuard
	catalogue    Catalogue
	settings     SettingsProvider
	assigner     BayAssigner
	userClient   UserServiceClient
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// userClient может быть nil: тогда автомобиль не проверяется
func NewUseCase(
	bookingRepo BookingRepository,
	guard CapacityGuard,
	catalogue Catalogue,
	settings SettingsProvider,
	assigner BayAssigner,
	userClient UserServiceClient,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		guard:        guard,
		catalogue:    catalogue,
		settings:     settings,
		assigner:     assigner,
		userClient:   userClient,
		metrics:      metrics,
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

// Execute выполняет use case создания бронирования
// Резервирование места и запись бронирования выполняются в одной транзакции
// с условным обновлением дня; конфликт версии повторяет попытку целиком
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%s, vehicle=%s, service=%s, date=%s, time=%s",
		req.UserID, req.VehicleID, req.ServiceName, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	label, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе бизнеса
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Получаем услугу из каталога
	service, ok := uc.catalogue.Find(req.ServiceName)
	if !ok {
		uc.logger.Warn("CreateBooking: service %q not found", req.ServiceName)
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, req.ServiceName)
	}

	// 4. Получаем настройки бизнеса
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 5. Проверяем способ оплаты
	paymentMethod, ok := settings.AcceptsPayment(req.PaymentMethod)
	if !ok {
		uc.logger.Warn("CreateBooking: payment method %q not accepted", req.PaymentMethod)
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	// 6. Валидация даты и отсечки
	if err := validateDate(req.Date, now, settings); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingTime(req.Date, label, now, settings.BookingCutoffHours); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 7. Проверяем автомобиль (graceful degradation при недоступности UserService)
	licensePlate, err := uc.vehiclePlate(ctx, req.UserID, req.VehicleID)
	if err != nil {
		return nil, err
	}

	// 8. Собираем бронирование с денормализацией данных услуги
	booking := &domain.Booking{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		VehicleID:       req.VehicleID,
		ServiceName:     service.Name,
		ServicePrice:    service.Price,
		DurationMinutes: service.DurationMinutes,
		IsPremium:       service.IsPremium,
		Date:            domain.DateOnly(req.Date),
		TimeLabel:       label,
		Status:          domain.StatusPending,
		Payment: domain.Payment{
			Method: paymentMethod,
			Status: domain.PaymentPending,
			Amount: service.Price,
		},
		PromoCode:         normalizePromo(req.PromoCode),
		LoyaltyPointsUsed: req.LoyaltyPointsUsed,
		LicensePlate:      licensePlate,
	}

	// 9. Резервируем место и сохраняем бронирование
	err = uc.guard.Run(ctx, capacity.Op{
		Name:   operationName,
		Locate: capacity.At(booking.Date, label),
		Apply: func(slot *domain.TimeSlot) error {
			return slot.Reserve(booking.IsPremium)
		},
		Commit: func(txCtx context.Context, before domain.TimeSlot) error {
			// порядковый номер бронирования в слоте = занятые места до резерва
			booking.Assignment = uc.assigner.Assign(label, before.Occupied())
			return uc.bookingRepo.Create(txCtx, booking)
		},
	})
	if err != nil {
		return nil, uc.mapReserveError(ctx, booking, err)
	}

	uc.metrics.BookingCreated(booking.IsPremium)
	uc.logger.Info("CreateBooking: successfully created booking id=%s for %s %s",
		booking.ID, booking.Date.Format(domain.DateFormat), label)

	return models.FromDomainBooking(booking), nil
}

// vehiclePlate проверяет автомобиль клиента и возвращает его номер
// При недоступности UserService бронирование продолжается без номера
func (uc *UseCase) vehiclePlate(ctx context.Context, userID, vehicleID string) (*string, error) {
	if uc.userClient == nil {
		return nil, nil
	}

	vehicle, err := uc.userClient.GetVehicleWithGracefulDegradation(ctx, userID, vehicleID)
	if err != nil {
		if errors.Is(err, userClient.ErrVehicleNotFound) {
			uc.logger.Warn("CreateBooking: vehicle id=%s not found for user=%s", vehicleID, userID)
			return nil, fmt.Errorf("%w: %s", ErrVehicleNotFound, vehicleID)
		}
		uc.logger.Warn("CreateBooking: proceeding without vehicle data: %v", err)
		return nil, nil
	}

	if vehicle.LicensePlate == "" {
		return nil, nil
	}
	return ptr.Ptr(vehicle.LicensePlate), nil
}

func (uc *UseCase) mapReserveError(ctx context.Context, booking *domain.Booking, err error) error {
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded):
		uc.metrics.SlotFull(booking.IsPremium)
		uc.logger.Warn("CreateBooking: slot %s %s is full (premium=%t)",
			booking.Date.Format(domain.DateFormat), booking.TimeLabel, booking.IsPremium)
		return fmt.Errorf("%w: %s %s", ErrSlotFull, booking.Date.Format(domain.DateFormat), booking.TimeLabel)
	case errors.Is(err, capacity.ErrSlotNotFound):
		uc.logger.Warn("CreateBooking: slot %s %s not found", booking.Date.Format(domain.DateFormat), booking.TimeLabel)
		return fmt.Errorf("%w: %s %s", ErrSlotNotFound, booking.Date.Format(domain.DateFormat), booking.TimeLabel)
	case errors.Is(err, capacity.ErrContention):
		return fmt.Errorf("%w: %v", ErrContention, err)
	case errors.Is(err, capacity.ErrTimeout), ctx.Err() != nil:
		uc.logger.Warn("CreateBooking: outcome unknown for booking id=%s: %v", booking.ID, err)
		return fmt.Errorf("%w: booking id=%s", ErrTimeout, booking.ID)
	}

	uc.logger.Error("CreateBooking: failed to create booking: %v", err)
	return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
}

func normalizePromo(code *string) *string {
	if code == nil {
		return nil
	}
	c := strings.TrimSpace(*code)
	if c == "" {
		return nil
	}
	return &c
}

type nopMetrics struct{}

func (nopMetrics) BookingCreated(bool) {}
func (nopMetrics) SlotFull(bool)       {}
