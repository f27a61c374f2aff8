package shifts

import (
	"sort"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

// Window полуинтервал времени [Start, End) в пределах суток
// Если End раньше Start, окно переходит через полночь
type Window struct {
	Start types.SlotLabel
	End   types.SlotLabel
	Bays  []int
}

// Contains проверяет попадание метки в окно
func (w Window) Contains(label types.SlotLabel) bool {
	if w.Start.IsZero() || w.End.IsZero() {
		return false
	}
	m, start, end := label.MustMinutes(), w.Start.MustMinutes(), w.End.MustMinutes()
	if m < 0 {
		return false
	}
	if start <= end {
		return m >= start && m < end
	}
	return m >= start || m < end
}

// Team смена детейлеров
type Team struct {
	Code        string
	Name        string
	Detailers   int
	Start       types.SlotLabel
	End         types.SlotLabel
	BattlePlan  types.SlotLabel
	Maintenance Window
	Break       Window
}

// Cycle цикл мойки: время старта, команда и набор боксов
type Cycle struct {
	Code            string
	Team            string
	Start           types.SlotLabel
	Bays            []int
	DurationMinutes int
	Ordinal         int
	Type            string
}

// SlotDescriptor описание рабочего слота, из которого строится день
type SlotDescriptor struct {
	Label           types.SlotLabel
	Team            string
	CycleCode       string
	Bays            []int
	MaxBookings     int
	DurationMinutes int
}

// TimeSlot строит пустой слот с одним местом на бокс
func (d SlotDescriptor) TimeSlot(premiumPerSlot int) domain.TimeSlot {
	return domain.TimeSlot{
		Label:      d.Label,
		MaxRegular: d.MaxBookings,
		MaxPremium: premiumPerSlot,
	}
}

// Summary сводка по сменам для отчетов
type Summary struct {
	Teams          []Team
	Cycles         []Cycle
	TotalBays      int
	TotalDetailers int
	TotalCycles    int
}

// Schedule статическое расписание смен и боксов
type Schedule struct {
	bays   []int
	teams  []Team
	cycles []Cycle
}

// New создает расписание
func New(bays []int, teams []Team, cycles []Cycle) *Schedule {
	return &Schedule{bays: bays, teams: teams, cycles: cycles}
}

// CycleForTime возвращает цикл, начинающийся в указанное время
func (s *Schedule) CycleForTime(label types.SlotLabel) (Cycle, bool) {
	for _, c := range s.cycles {
		if c.Start == label {
			return c, true
		}
	}
	return Cycle{}, false
}

// TeamForTime возвращает команду, обслуживающую цикл в указанное время
func (s *Schedule) TeamForTime(label types.SlotLabel) (Team, bool) {
	cycle, ok := s.CycleForTime(label)
	if !ok {
		return Team{}, false
	}
	return s.team(cycle.Team)
}

// BayForBooking возвращает бокс для n-го бронирования слота (round-robin)
func (s *Schedule) BayForBooking(label types.SlotLabel, ordinal int) (int, bool) {
	cycle, ok := s.CycleForTime(label)
	if !ok || len(cycle.Bays) == 0 || ordinal < 0 {
		return 0, false
	}
	return cycle.Bays[ordinal%len(cycle.Bays)], true
}

// Assign строит аннотацию бронирования; nil, если слот не привязан к циклу
func (s *Schedule) Assign(label types.SlotLabel, ordinal int) *domain.BayAssignment {
	bay, ok := s.BayForBooking(label, ordinal)
	if !ok {
		return nil
	}
	cycle, _ := s.CycleForTime(label)
	team, _ := s.team(cycle.Team)
	return &domain.BayAssignment{
		Bay:       bay,
		Team:      team.Name,
		CycleCode: cycle.Code,
	}
}

// IsBreak проверяет, попадает ли время в перерыв какой-либо команды
func (s *Schedule) IsBreak(label types.SlotLabel) bool {
	for _, t := range s.teams {
		if t.Break.Contains(label) {
			return true
		}
	}
	return false
}

// IsMaintenance проверяет, попадает ли время в обслуживание боксов
func (s *Schedule) IsMaintenance(label types.SlotLabel) bool {
	for _, t := range s.teams {
		if t.Maintenance.Contains(label) {
			return true
		}
	}
	return false
}

// IsBattlePlan проверяет, совпадает ли время с планеркой команды
func (s *Schedule) IsBattlePlan(label types.SlotLabel) bool {
	for _, t := range s.teams {
		if t.BattlePlan == label {
			return true
		}
	}
	return false
}

// IsOperational true, если время не занято перерывом, обслуживанием или планеркой
func (s *Schedule) IsOperational(label types.SlotLabel) bool {
	return !s.IsBreak(label) && !s.IsMaintenance(label) && !s.IsBattlePlan(label)
}

// OperationalSlots возвращает рабочие слоты, отсортированные по времени суток
func (s *Schedule) OperationalSlots() []SlotDescriptor {
	slots := make([]SlotDescriptor, 0, len(s.cycles))
	for _, c := range s.cycles {
		if !s.IsOperational(c.Start) {
			continue
		}
		slots = append(slots, SlotDescriptor{
			Label:           c.Start,
			Team:            c.Team,
			CycleCode:       c.Code,
			Bays:            append([]int(nil), c.Bays...),
			MaxBookings:     len(c.Bays),
			DurationMinutes: c.DurationMinutes,
		})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Label.MustMinutes() < slots[j].Label.MustMinutes()
	})
	return slots
}

// DaySlots строит пустые слоты дня из рабочих слотов расписания
func (s *Schedule) DaySlots(premiumPerSlot int) []domain.TimeSlot {
	descriptors := s.OperationalSlots()
	slots := make([]domain.TimeSlot, 0, len(descriptors))
	for _, d := range descriptors {
		slots = append(slots, d.TimeSlot(premiumPerSlot))
	}
	return slots
}

// Summary возвращает сводку по сменам
func (s *Schedule) Summary() Summary {
	detailers := 0
	for _, t := range s.teams {
		detailers += t.Detailers
	}
	return Summary{
		Teams:          append([]Team(nil), s.teams...),
		Cycles:         append([]Cycle(nil), s.cycles...),
		TotalBays:      len(s.bays),
		TotalDetailers: detailers,
		TotalCycles:    len(s.cycles),
	}
}

func (s *Schedule) team(code string) (Team, bool) {
	for _, t := range s.teams {
		if t.Code == code {
			return t, true
		}
	}
	return Team{}, false
}
