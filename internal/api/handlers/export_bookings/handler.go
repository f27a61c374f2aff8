package export_bookings

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	service ReportsService
	logger  Logger
}

func NewHandler(service ReportsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings/export?date=YYYY-MM-DD
// Файл собирается целиком в памяти, чтобы ошибка не оборвала ответ на середине
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /admin/bookings/export - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportBookings(r.Context(), date, &buf); err != nil {
		h.logger.Error("GET /admin/bookings/export - Failed to export: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bookings-%s.xlsx"`, dateStr))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /admin/bookings/export - Failed to write response: date=%s, error=%v", dateStr, err)
		return
	}

	h.logger.Info("GET /admin/bookings/export - Bookings exported: date=%s", dateStr)
}
