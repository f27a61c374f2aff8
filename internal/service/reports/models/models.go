package models

import (
	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
)

// DashboardResponse сводка за день для персонала
type DashboardResponse struct {
	Date          string         `json:"date"`
	TotalBookings int            `json:"totalBookings"`
	ByStatus      map[string]int `json:"byStatus"`
	Revenue       float64        `json:"revenue"`
	AverageRating float64        `json:"averageRating"`
	RatedBookings int            `json:"ratedBookings"`
	ActiveStaff   int            `json:"activeStaff"`
}

// FromDomainStats конвертирует domain.DashboardStats в ответ
func FromDomainStats(s domain.DashboardStats) *DashboardResponse {
	resp := &DashboardResponse{
		Date:          s.Date.Format(domain.DateFormat),
		TotalBookings: s.TotalBookings,
		ByStatus:      make(map[string]int, 4),
		Revenue:       s.Revenue,
		AverageRating: s.AverageRating,
		RatedBookings: s.RatedBookings,
	}
	for _, st := range []domain.BookingStatus{
		domain.StatusPending, domain.StatusOngoing, domain.StatusCompleted, domain.StatusCancelled,
	} {
		resp.ByStatus[string(st)] = s.ByStatus[st]
	}
	return resp
}
