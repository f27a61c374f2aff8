package get_services

import "github.com/m04kA/SMC-AvailabilityLedger/internal/domain"

type Catalogue interface {
	All() []domain.Service
}
