package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает нормализованную метку слота
func validateRequest(req *Request) (types.SlotLabel, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return "", fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.VehicleID) == "" {
		return "", fmt.Errorf("%w: vehicleID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceName) == "" {
		return "", fmt.Errorf("%w: service is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	label, err := types.ParseSlotLabel(req.Time)
	if err != nil {
		return "", fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	if req.PromoCode != nil && utf8.RuneCountInString(*req.PromoCode) > domain.MaxPromoCodeLength {
		return "", fmt.Errorf("%w: promo code exceeds %d characters", ErrInvalidInput, domain.MaxPromoCodeLength)
	}

	if req.LoyaltyPointsUsed < 0 {
		return "", fmt.Errorf("%w: loyaltyPointsUsed must not be negative", ErrInvalidInput)
	}

	return label, nil
}

// validateDate проверяет, что дата подходит для бронирования
// now должен быть в часовом поясе бизнеса
func validateDate(bookingDate time.Time, now time.Time, settings *domain.BusinessSettings) error {
	today := domain.DateOnly(now)
	date := domain.DateOnly(bookingDate)

	// Проверяем, что дата не в прошлом
	if date.Before(today) {
		return ErrInvalidDate
	}

	// Проверяем горизонт бронирования
	if settings.HasAdvanceBookingLimit() && date.After(today.AddDate(0, 0, settings.MaxAdvanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.MaxAdvanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет отсечку: слот должен начинаться не раньше now + cutoffHours
func validateBookingTime(bookingDate time.Time, label types.SlotLabel, now time.Time, cutoffHours int) error {
	local := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, now.Location())

	start, err := label.On(local)
	if err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	if start.Before(now.Add(time.Duration(cutoffHours) * time.Hour)) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, cutoffHours)
	}

	return nil
}
