package put_day

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
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректная метка времени слота, ожидается HH:MM AM"
	msgInvalidSlots       = "некорректные слоты дня"
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

// Handle PUT /api/v1/admin/availability/{date}
// Перезаписывает день целиком вместе со счетчиками
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("PUT /admin/availability/{date} - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req PutDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/availability/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slots, err := req.ToDomainSlots()
	if err != nil {
		h.logger.Warn("PUT /admin/availability/{date} - Invalid slot label: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	day, err := h.service.SeedDay(r.Context(), date, slots)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/availability/{date} - Invalid slots: date=%s, error=%v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidSlots)
			return
		}
		h.logger.Error("PUT /admin/availability/{date} - Failed to seed day: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/availability/{date} - Day seeded: date=%s, slots=%d, version=%d",
		dateStr, len(day.Slots), day.Version)
	handlers.RespondJSON(w, http.StatusOK, FromDomainDay(day))
}
