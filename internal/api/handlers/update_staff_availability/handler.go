package update_staff_availability

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/staff"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/staff/models"
)

const (
	msgInvalidWasherID     = "некорректный ID сотрудника"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidAvailability = "некорректный статус доступности"
	msgNotFound            = "сотрудник не найден"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/staff/{washerId}/availability
// Только для персонала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	washerID := strings.TrimSpace(mux.Vars(r)["washerId"])
	if washerID == "" {
		h.logger.Warn("PATCH /admin/staff/{id}/availability - Missing washer ID")
		handlers.RespondBadRequest(w, msgInvalidWasherID)
		return
	}

	var req models.UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/staff/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateAvailability(r.Context(), washerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/staff/{id}/availability - Invalid availability: washer_id=%s, value=%q", washerID, req.Availability)
			handlers.RespondBadRequest(w, msgInvalidAvailability)

		case errors.Is(err, staff.ErrWasherNotFound):
			h.logger.Warn("PATCH /admin/staff/{id}/availability - Washer not found: washer_id=%s", washerID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/staff/{id}/availability - Failed to update: washer_id=%s, error=%v", washerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/staff/{id}/availability - Availability updated: washer_id=%s, availability=%s", washerID, result.Availability)
	handlers.RespondJSON(w, http.StatusOK, result)
}
