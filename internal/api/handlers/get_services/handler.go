package get_services

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers"
)

type Handler struct {
	catalogue Catalogue
}

func NewHandler(catalogue Catalogue) *Handler {
	return &Handler{catalogue: catalogue}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.catalogue.All())
}
