package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
)

// buildSlots строит ответ по слотам дня
// now в часовом поясе бизнеса; слот бронируем, если открыт и начинается после now + cutoff
func buildSlots(day *domain.DayAvailability, schedule ShiftSchedule, now time.Time, cutoffHours int) []Slot {
	earliest := now.Add(time.Duration(cutoffHours) * time.Hour)
	local := time.Date(day.Date.Year(), day.Date.Month(), day.Date.Day(), 0, 0, 0, 0, now.Location())

	slots := make([]Slot, 0, len(day.Slots))
	for i := range day.Slots {
		ts := &day.Slots[i]

		slot := Slot{
			Time:             ts.Label.String(),
			MaxRegular:       ts.MaxRegular,
			CurrentRegular:   ts.CurrentRegular,
			RemainingRegular: ts.RemainingRegular(),
			MaxPremium:       ts.MaxPremium,
			CurrentPremium:   ts.CurrentPremium,
			RemainingPremium: ts.RemainingPremium(),
			IsOpen:           ts.IsOpen(),
		}

		if start, err := ts.Label.On(local); err == nil {
			slot.Bookable = slot.IsOpen && !start.Before(earliest)
		}

		if cycle, ok := schedule.CycleForTime(ts.Label); ok {
			slot.CycleCode = cycle.Code
			slot.Bays = append([]int(nil), cycle.Bays...)
		}
		if team, ok := schedule.TeamForTime(ts.Label); ok {
			slot.Team = team.Name
		}

		slots = append(slots, slot)
	}

	return slots
}
