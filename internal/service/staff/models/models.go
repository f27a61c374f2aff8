package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
)

// CreateWasherRequest запрос на добавление сотрудника
type CreateWasherRequest struct {
	UserID       string  `json:"userId"`
	Name         string  `json:"name"`
	Availability *string `json:"availability,omitempty"` // по умолчанию "Off Duty"
}

// UpdateAvailabilityRequest запрос на смену доступности
type UpdateAvailabilityRequest struct {
	Availability string `json:"availability"`
}

// WasherResponse сотрудник в ответе API
type WasherResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Name             string    `json:"name"`
	Availability     string    `json:"availability"`
	AssignedBookings []string  `json:"assignedBookings"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ListWashersResponse список сотрудников
type ListWashersResponse struct {
	Staff []*WasherResponse `json:"staff"`
}

// FromDomainWasher конвертирует domain.Washer в ответ
func FromDomainWasher(w *domain.Washer) *WasherResponse {
	return &WasherResponse{
		ID:               w.ID,
		UserID:           w.UserID,
		Name:             w.Name,
		Availability:     string(w.Availability),
		AssignedBookings: append([]string{}, w.AssignedBookings...),
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}
