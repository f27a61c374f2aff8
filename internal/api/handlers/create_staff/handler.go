package create_staff

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/staff"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/staff/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные сотрудника"
	msgDuplicate          = "сотрудник уже существует"
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

// Handle POST /api/v1/admin/staff
// Только для персонала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWasherRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("POST /admin/staff - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, staff.ErrDuplicateWasher):
			h.logger.Warn("POST /admin/staff - Duplicate washer: user_id=%s", req.UserID)
			handlers.RespondConflict(w, msgDuplicate)

		default:
			h.logger.Error("POST /admin/staff - Failed to create washer: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/staff - Washer created: washer_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
