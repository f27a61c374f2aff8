package put_day

import (
	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

// PutDayRequest HTTP request model
// Пустой список слотов заводит закрытый день
type PutDayRequest struct {
	Slots []SlotRequest `json:"slots"`
}

// SlotRequest слот с вместимостью и текущими счетчиками
type SlotRequest struct {
	Time           string `json:"time"`
	MaxRegular     int    `json:"maxRegular"`
	CurrentRegular int    `json:"currentRegular"`
	MaxPremium     int    `json:"maxPremium"`
	CurrentPremium int    `json:"currentPremium"`
}

// DayResponse HTTP response model
type DayResponse struct {
	Date    string         `json:"date"`
	Version int64          `json:"version"`
	IsOpen  bool           `json:"isOpen"`
	Slots   []SlotResponse `json:"slots"`
}

// SlotResponse слот дня
type SlotResponse struct {
	Time           string `json:"time"`
	MaxRegular     int    `json:"maxRegular"`
	CurrentRegular int    `json:"currentRegular"`
	MaxPremium     int    `json:"maxPremium"`
	CurrentPremium int    `json:"currentPremium"`
	IsOpen         bool   `json:"isOpen"`
}

// ToDomainSlots конвертирует слоты запроса, нормализуя метки времени
func (r *PutDayRequest) ToDomainSlots() ([]domain.TimeSlot, error) {
	slots := make([]domain.TimeSlot, 0, len(r.Slots))
	for _, s := range r.Slots {
		label, err := types.ParseSlotLabel(s.Time)
		if err != nil {
			return nil, err
		}
		slots = append(slots, domain.TimeSlot{
			Label:          label,
			MaxRegular:     s.MaxRegular,
			CurrentRegular: s.CurrentRegular,
			MaxPremium:     s.MaxPremium,
			CurrentPremium: s.CurrentPremium,
		})
	}
	return slots, nil
}

// FromDomainDay конвертирует день в HTTP response
func FromDomainDay(day *domain.DayAvailability) *DayResponse {
	resp := &DayResponse{
		Date:    day.DateKey(),
		Version: day.Version,
		IsOpen:  day.IsOpen(),
		Slots:   make([]SlotResponse, 0, len(day.Slots)),
	}
	for _, s := range day.Slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			Time:           s.Label.String(),
			MaxRegular:     s.MaxRegular,
			CurrentRegular: s.CurrentRegular,
			MaxPremium:     s.MaxPremium,
			CurrentPremium: s.CurrentPremium,
			IsOpen:         s.IsOpen(),
		})
	}
	return resp
}
