package seed_days

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange       = "некорректный диапазон дат"
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

// Handle POST /api/v1/admin/availability/seed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SeedDaysRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/availability/seed - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/availability/seed - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.SeedRange(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("POST /admin/availability/seed - Invalid range: from=%s, to=%s, error=%v", req.From, req.To, err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("POST /admin/availability/seed - Failed to seed: from=%s, to=%s, error=%v", req.From, req.To, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/availability/seed - Days seeded: from=%s, to=%s, seeded=%d, closed=%d, skipped=%d, held=%d",
		req.From, req.To, len(result.Seeded), len(result.Closed), len(result.Skipped), len(result.Held))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
