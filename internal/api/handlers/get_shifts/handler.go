package get_shifts

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers"
)

type Handler struct {
	schedule ShiftSchedule
}

func NewHandler(schedule ShiftSchedule) *Handler {
	return &Handler{schedule: schedule}
}

// Handle GET /api/v1/shifts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromSummary(h.schedule.Summary()))
}
