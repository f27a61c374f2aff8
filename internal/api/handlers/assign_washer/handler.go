package assign_washer

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/bookings"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingWasherID    = "ID сотрудника обязателен"
	msgNotFound           = "бронирование не найдено"
	msgWasherNotFound     = "сотрудник не найден"
	msgNotAssignable      = "бронирование отменено или завершено"
	msgTimeout            = "истекло время ожидания, проверьте состояние бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/washer
// Только для персонала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if _, err := uuid.Parse(bookingID); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/washer - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.AssignWasherRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/washer - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AssignWasher(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/washer - Missing washer ID: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgMissingWasherID)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/washer - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrWasherNotFound):
			h.logger.Warn("PATCH /bookings/{id}/washer - Washer not found: washer_id=%s", req.WasherID)
			handlers.RespondNotFound(w, msgWasherNotFound)

		case errors.Is(err, bookings.ErrNotAssignable):
			h.logger.Warn("PATCH /bookings/{id}/washer - Booking is closed: booking_id=%s", bookingID)
			handlers.RespondUnprocessable(w, msgNotAssignable)

		case errors.Is(err, bookings.ErrTimeout):
			h.logger.Warn("PATCH /bookings/{id}/washer - Outcome unknown: booking_id=%s", bookingID)
			handlers.RespondGatewayTimeout(w, msgTimeout)

		default:
			h.logger.Error("PATCH /bookings/{id}/washer - Failed to assign washer: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/washer - Washer assigned: booking_id=%s, washer_id=%s", bookingID, req.WasherID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
