package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-AvailabilityLedger/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidDate          = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidInput         = "некорректные данные бронирования"
	msgServiceNotFound      = "услуга не найдена"
	msgVehicleNotFound      = "автомобиль не найден"
	msgInvalidPaymentMethod = "способ оплаты не поддерживается"
	msgInvalidBookingDate   = "некорректная дата бронирования"
	msgDateTooFar           = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook        = "слишком поздно для бронирования этого слота"
	msgSlotNotFound         = "временной слот не найден"
	msgSlotFull             = "в выбранном слоте нет свободных мест"
	msgContention           = "слот сейчас занят другими запросами, повторите попытку"
	msgTimeout              = "истекло время ожидания, проверьте список своих бронирований"
	contentionRetryAfter    = 1
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: user_id=%s, service=%q", userID, req.Service)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrVehicleNotFound):
			h.logger.Warn("POST /bookings - Vehicle not found: user_id=%s, vehicle_id=%s", userID, req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, createBooking.ErrInvalidPaymentMethod):
			h.logger.Warn("POST /bookings - Invalid payment method: user_id=%s, method=%q", userID, req.PaymentMethod)
			handlers.RespondBadRequest(w, msgInvalidPaymentMethod)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%s, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: user_id=%s, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: user_id=%s, date=%s, time=%s", userID, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrContention):
			h.logger.Warn("POST /bookings - Contention: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondRetryableConflict(w, msgContention, contentionRetryAfter)

		case errors.Is(err, createBooking.ErrTimeout):
			h.logger.Warn("POST /bookings - Timeout, outcome unknown: user_id=%s, date=%s, time=%s", userID, req.Date, req.Time)
			handlers.RespondGatewayTimeout(w, msgTimeout)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, date=%s, time=%s",
		result.ID, userID, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
