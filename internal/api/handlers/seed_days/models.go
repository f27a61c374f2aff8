package seed_days

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/availability/models"
)

// SeedDaysRequest HTTP request model
type SeedDaysRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Overwrite bool   `json:"overwrite,omitempty"`
}

// SeedDaysResponse HTTP response model
type SeedDaysResponse struct {
	Seeded  []string `json:"seeded"`
	Closed  []string `json:"closed"`
	Skipped []string `json:"skipped"`
	Held    []string `json:"held"` // не перезаписаны: есть бронирования
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SeedDaysRequest) ToServiceRequest() (*models.SeedRangeRequest, error) {
	from, err := time.Parse(domain.DateFormat, r.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := time.Parse(domain.DateFormat, r.To)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	return &models.SeedRangeRequest{From: from, To: to, Overwrite: r.Overwrite}, nil
}

// FromServiceResult конвертирует итог заполнения в HTTP response
func FromServiceResult(res *models.SeedRangeResult) *SeedDaysResponse {
	return &SeedDaysResponse{
		Seeded:  formatDates(res.Seeded),
		Closed:  formatDates(res.Closed),
		Skipped: formatDates(res.Skipped),
		Held:    formatDates(res.Held),
	}
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(domain.DateFormat))
	}
	return out
}
