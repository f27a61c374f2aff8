package get_availability

import (
	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	getAvailability "github.com/m04kA/SMC-AvailabilityLedger/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date    string          `json:"date"`
	Version int64           `json:"version"`
	IsOpen  bool            `json:"isOpen"`
	Slots   []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time             string `json:"time"`
	MaxRegular       int    `json:"maxRegular"`
	CurrentRegular   int    `json:"currentRegular"`
	RemainingRegular int    `json:"remainingRegular"`
	MaxPremium       int    `json:"maxPremium"`
	CurrentPremium   int    `json:"currentPremium"`
	RemainingPremium int    `json:"remainingPremium"`
	IsOpen           bool   `json:"isOpen"`
	Bookable         bool   `json:"bookable"`
	Team             string `json:"team,omitempty"`
	CycleCode        string `json:"cycleCode,omitempty"`
	Bays             []int  `json:"bays,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:             slot.Time,
			MaxRegular:       slot.MaxRegular,
			CurrentRegular:   slot.CurrentRegular,
			RemainingRegular: slot.RemainingRegular,
			MaxPremium:       slot.MaxPremium,
			CurrentPremium:   slot.CurrentPremium,
			RemainingPremium: slot.RemainingPremium,
			IsOpen:           slot.IsOpen,
			Bookable:         slot.Bookable,
			Team:             slot.Team,
			CycleCode:        slot.CycleCode,
			Bays:             slot.Bays,
		}
	}

	return &AvailabilityResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		Version: resp.Version,
		IsOpen:  resp.IsOpen,
		Slots:   slots,
	}
}
