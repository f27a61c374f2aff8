package get_shifts

import (
	"github.com/m04kA/SMC-AvailabilityLedger/internal/shifts"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

// SummaryResponse сводка по сменам
type SummaryResponse struct {
	Teams          []TeamResponse  `json:"teams"`
	Cycles         []CycleResponse `json:"cycles"`
	TotalBays      int             `json:"totalBays"`
	TotalDetailers int             `json:"totalDetailers"`
	TotalCycles    int             `json:"totalCycles"`
}

// TeamResponse смена
type TeamResponse struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Detailers   int             `json:"detailers"`
	Start       string          `json:"start"`
	End         string          `json:"end"`
	BattlePlan  string          `json:"battlePlan,omitempty"`
	Maintenance *WindowResponse `json:"maintenance,omitempty"`
	Break       *WindowResponse `json:"break,omitempty"`
}

// WindowResponse окно [start, end)
type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Bays  []int  `json:"bays,omitempty"`
}

// CycleResponse цикл мойки
type CycleResponse struct {
	Code            string `json:"code"`
	Team            string `json:"team"`
	Start           string `json:"start"`
	Bays            []int  `json:"bays"`
	DurationMinutes int    `json:"durationMinutes"`
	Type            string `json:"type"`
}

// FromSummary конвертирует сводку в HTTP response
func FromSummary(s shifts.Summary) *SummaryResponse {
	resp := &SummaryResponse{
		Teams:          make([]TeamResponse, 0, len(s.Teams)),
		Cycles:         make([]CycleResponse, 0, len(s.Cycles)),
		TotalBays:      s.TotalBays,
		TotalDetailers: s.TotalDetailers,
		TotalCycles:    s.TotalCycles,
	}
	for _, t := range s.Teams {
		resp.Teams = append(resp.Teams, TeamResponse{
			Code:        t.Code,
			Name:        t.Name,
			Detailers:   t.Detailers,
			Start:       t.Start.String(),
			End:         t.End.String(),
			BattlePlan:  labelOrEmpty(t.BattlePlan),
			Maintenance: window(t.Maintenance),
			Break:       window(t.Break),
		})
	}
	for _, c := range s.Cycles {
		resp.Cycles = append(resp.Cycles, CycleResponse{
			Code:            c.Code,
			Team:            c.Team,
			Start:           c.Start.String(),
			Bays:            c.Bays,
			DurationMinutes: c.DurationMinutes,
			Type:            c.Type,
		})
	}
	return resp
}

func window(w shifts.Window) *WindowResponse {
	if w.Start.IsZero() || w.End.IsZero() {
		return nil
	}
	return &WindowResponse{Start: w.Start.String(), End: w.End.String(), Bays: w.Bays}
}

func labelOrEmpty(l types.SlotLabel) string {
	if l.IsZero() {
		return ""
	}
	return l.String()
}
