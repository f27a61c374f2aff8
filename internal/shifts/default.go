package shifts

import "github.com/m04kA/SMC-AvailabilityLedger/pkg/types"

const (
	cycleDurationMinutes = 90
	bayShift             = "Bay Shift"
)

var (
	firstBays  = []int{1, 2, 3}
	secondBays = []int{4, 5, 6}
)

func label(s string) types.SlotLabel {
	return types.MustParseSlotLabel(s)
}

// Default возвращает расписание автомойки: 6 боксов, три смены по 3 детейлера
func Default() *Schedule {
	teams := []Team{
		{
			Code:        "AM",
			Name:        "AM Team",
			Detailers:   3,
			Start:       label("6:00 AM"),
			End:         label("3:00 PM"),
			BattlePlan:  label("6:00 AM"),
			Maintenance: Window{Start: label("6:15 AM"), End: label("6:30 AM"), Bays: secondBays},
			Break:       Window{Start: label("11:00 AM"), End: label("12:00 PM")},
		},
		{
			Code:        "PM",
			Name:        "PM Team",
			Detailers:   3,
			Start:       label("2:00 PM"),
			End:         label("11:00 PM"),
			BattlePlan:  label("2:00 PM"),
			Maintenance: Window{Start: label("2:15 PM"), End: label("2:30 PM"), Bays: firstBays},
			Break:       Window{Start: label("5:30 PM"), End: label("6:30 PM")},
		},
		{
			Code:        "GY",
			Name:        "Graveyard Team",
			Detailers:   3,
			Start:       label("10:00 PM"),
			End:         label("7:00 AM"),
			BattlePlan:  label("10:00 PM"),
			Maintenance: Window{Start: label("10:15 PM"), End: label("10:30 PM"), Bays: secondBays},
			Break:       Window{Start: label("1:30 AM"), End: label("2:30 AM")},
		},
	}

	cycles := []Cycle{
		cycle("W1-W3", "AM", "6:30 AM", secondBays, 1, ""),
		cycle("W4-W6", "AM", "8:00 AM", firstBays, 2, ""),
		cycle("W7-W9", "AM", "9:30 AM", firstBays, 3, ""),
		cycle("W10-W12", "AM", "12:00 PM", firstBays, 4, ""),
		cycle("W13-W15", "AM", "1:30 PM", secondBays, 5, bayShift),
		cycle("W16-W18", "PM", "2:30 PM", firstBays, 1, ""),
		cycle("W19-W21", "PM", "4:00 PM", secondBays, 2, ""),
		cycle("W22-W24", "PM", "6:30 PM", secondBays, 3, ""),
		cycle("W25-W27", "PM", "8:00 PM", secondBays, 4, ""),
		cycle("W28-W30", "PM", "9:30 PM", firstBays, 5, bayShift),
		cycle("W31-W33", "GY", "10:30 PM", secondBays, 1, ""),
		cycle("W34-W36", "GY", "12:00 AM", secondBays, 2, ""),
		cycle("W37-W39", "GY", "2:30 AM", firstBays, 3, ""),
		cycle("W40-W42", "GY", "4:00 AM", firstBays, 4, ""),
		cycle("W43-W45", "GY", "5:30 AM", firstBays, 5, bayShift),
	}

	return New([]int{1, 2, 3, 4, 5, 6}, teams, cycles)
}

func cycle(code, team, start string, bays []int, ordinal int, typ string) Cycle {
	return Cycle{
		Code:            code,
		Team:            team,
		Start:           label(start),
		Bays:            bays,
		DurationMinutes: cycleDurationMinutes,
		Ordinal:         ordinal,
		Type:            typ,
	}
}
