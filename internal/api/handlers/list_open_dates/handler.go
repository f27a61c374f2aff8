package list_open_dates

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/availability"
)

const (
	msgInvalidFrom  = "некорректный параметр from, ожидается YYYY-MM-DD"
	msgInvalidTo    = "некорректный параметр to, ожидается YYYY-MM-DD"
	msgInvalidRange = "некорректный диапазон дат"
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

// Handle GET /api/v1/availability?from=YYYY-MM-DD&to=YYYY-MM-DD
// Диапазон ограничен сервисом, поэтому даты собираются до отправки ответа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}
	to, err := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTo)
		return
	}

	dates := make([]string, 0)
	for date, err := range h.service.ListOpenDates(r.Context(), from, to) {
		if err != nil {
			h.respondError(w, from, to, err)
			return
		}
		dates = append(dates, date.Format(domain.DateFormat))
	}

	h.logger.Info("GET /availability - Open dates listed: from=%s, to=%s, count=%d",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat), len(dates))
	handlers.RespondJSON(w, http.StatusOK, dates)
}

func (h *Handler) respondError(w http.ResponseWriter, from, to time.Time, err error) {
	if errors.Is(err, availability.ErrInvalidInput) {
		h.logger.Warn("GET /availability - Invalid range: from=%s, to=%s, error=%v",
			from.Format(domain.DateFormat), to.Format(domain.DateFormat), err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	h.logger.Error("GET /availability - Failed to list open dates: from=%s, to=%s, error=%v",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat), err)
	handlers.RespondInternalError(w)
}
