package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	createBooking "github.com/m04kA/SMC-AvailabilityLedger/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// ID клиента берется из токена, а не из тела
type CreateBookingRequest struct {
	VehicleID         string  `json:"vehicleId"`
	Service           string  `json:"service"`
	Date              string  `json:"date"` // "2025-01-02"
	Time              string  `json:"time"` // "09:00 AM"
	PaymentMethod     string  `json:"paymentMethod"`
	PromoCode         *string `json:"promoCode,omitempty"`
	LoyaltyPointsUsed int     `json:"loyaltyPointsUsed,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Метка времени проверяется в use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:            userID,
		VehicleID:         r.VehicleID,
		ServiceName:       r.Service,
		Date:              date,
		Time:              r.Time,
		PaymentMethod:     r.PaymentMethod,
		PromoCode:         r.PromoCode,
		LoyaltyPointsUsed: r.LoyaltyPointsUsed,
	}, nil
}
