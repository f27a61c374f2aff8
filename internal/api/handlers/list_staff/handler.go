package list_staff

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/staff"
)

const msgInvalidAvailability = "некорректный статус доступности"

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

// Handle GET /api/v1/admin/staff?availability=On%20Work
// Только для персонала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var availability *string
	if v, ok := r.URL.Query()["availability"]; ok && len(v) > 0 {
		availability = &v[0]
	}

	result, err := h.service.List(r.Context(), availability)
	if err != nil {
		if errors.Is(err, staff.ErrInvalidInput) {
			h.logger.Warn("GET /admin/staff - Invalid availability filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAvailability)
			return
		}
		h.logger.Error("GET /admin/staff - Failed to list staff: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
