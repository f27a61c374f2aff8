package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	BookingCutoffHours    *int      `json:"bookingCutoffHours,omitempty"`
	MaxAdvanceBookingDays *int      `json:"maxAdvanceBookingDays,omitempty"` // 0 = без ограничений
	ClosedWeekdays        *[]int    `json:"closedWeekdays,omitempty"`        // 0 = воскресенье
	PaymentMethods        *[]string `json:"paymentMethods,omitempty"`
}

// SettingsResponse ответ с настройками
type SettingsResponse struct {
	BookingCutoffHours    int        `json:"bookingCutoffHours"`
	MaxAdvanceBookingDays int        `json:"maxAdvanceBookingDays"`
	ClosedWeekdays        []int      `json:"closedWeekdays"`
	PaymentMethods        []string   `json:"paymentMethods"`
	UpdatedAt             *time.Time `json:"updatedAt,omitempty"`
}

// FromDomain конвертирует domain.BusinessSettings в ответ
func FromDomain(s *domain.BusinessSettings) *SettingsResponse {
	resp := &SettingsResponse{
		BookingCutoffHours:    s.BookingCutoffHours,
		MaxAdvanceBookingDays: s.MaxAdvanceBookingDays,
		ClosedWeekdays:        make([]int, 0, len(s.ClosedWeekdays)),
		PaymentMethods:        append([]string{}, s.PaymentMethods...),
	}
	for _, wd := range s.ClosedWeekdays {
		resp.ClosedWeekdays = append(resp.ClosedWeekdays, int(wd))
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}
