package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// Actor пользователь, выполняющий действие
type Actor struct {
	UserID string
	Staff  bool
}

// AdvanceStatusRequest запрос на смену статуса бронирования
type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

// RateBookingRequest запрос на оценку бронирования
type RateBookingRequest struct {
	UserID string  `json:"-"`
	Rating int     `json:"rating"`
	Review *string `json:"review,omitempty"`
}

// AssignWasherRequest запрос на назначение сотрудника
type AssignWasherRequest struct {
	WasherID string `json:"washerId"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID string
	Status *string
	Limit  int
}

// Response модели

// PaymentResponse данные оплаты
type PaymentResponse struct {
	Method string  `json:"method"`
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}

// AssignmentResponse бокс, смена и цикл бронирования
type AssignmentResponse struct {
	Bay       int    `json:"bay"`
	Team      string `json:"team"`
	CycleCode string `json:"cycleCode"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	VehicleID string  `json:"vehicleId"`
	WasherID  *string `json:"washerId,omitempty"`

	// Денормализованные данные услуги
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	DurationMinutes int     `json:"durationMinutes"`
	IsPremium       bool    `json:"isPremium"`

	Date    string          `json:"date"` // "2025-01-02"
	Time    string          `json:"time"` // "09:00 AM"
	Status  string          `json:"status"`
	Payment PaymentResponse `json:"payment"`

	PromoCode         *string `json:"promoCode,omitempty"`
	LoyaltyPointsUsed int     `json:"loyaltyPointsUsed"`
	LicensePlate      *string `json:"licensePlate,omitempty"`

	Rating *int    `json:"rating,omitempty"`
	Review *string `json:"review,omitempty"`

	Assignment *AssignmentResponse `json:"assignment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		VehicleID:       b.VehicleID,
		WasherID:        b.WasherID,
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		DurationMinutes: b.DurationMinutes,
		IsPremium:       b.IsPremium,
		Date:            b.Date.Format(domain.DateFormat),
		Time:            b.TimeLabel.String(),
		Status:          string(b.Status),
		Payment: PaymentResponse{
			Method: b.Payment.Method,
			Status: string(b.Payment.Status),
			Amount: b.Payment.Amount,
		},
		PromoCode:         b.PromoCode,
		LoyaltyPointsUsed: b.LoyaltyPointsUsed,
		LicensePlate:      b.LicensePlate,
		Rating:            b.Rating,
		Review:            b.Review,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}

	if a := b.Assignment; a != nil {
		resp.Assignment = &AssignmentResponse{Bay: a.Bay, Team: a.Team, CycleCode: a.CycleCode}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, err := domain.ParseBookingStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return s, nil
}
