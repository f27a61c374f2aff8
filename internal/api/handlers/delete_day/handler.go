package delete_day

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/availability"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDayNotFound = "расписание на эту дату не заведено"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/availability/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("DELETE /admin/availability/{date} - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.DeleteDay(r.Context(), date); err != nil {
		if errors.Is(err, availability.ErrDayNotFound) {
			h.logger.Warn("DELETE /admin/availability/{date} - Day not found: date=%s", dateStr)
			handlers.RespondNotFound(w, msgDayNotFound)
			return
		}
		h.logger.Error("DELETE /admin/availability/{date} - Failed to delete day: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/availability/{date} - Day deleted: date=%s", dateStr)
	w.WriteHeader(http.StatusNoContent)
}
