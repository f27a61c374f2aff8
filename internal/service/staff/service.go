package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/staff/models"
)

// Service сервис состава сотрудников
type Service struct {
	repo   WasherRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(repo WasherRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List возвращает сотрудников, опционально только с заданной доступностью
func (s *Service) List(ctx context.Context, availability *string) (*models.ListWashersResponse, error) {
	var filter *domain.WasherAvailability
	if availability != nil {
		a, err := domain.ParseWasherAvailability(*availability)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter = &a
	}

	washers, err := s.repo.ListWashers(ctx, filter)
	if err != nil {
		s.logger.Error("ListStaff: failed to list washers: %v", err)
		return nil, fmt.Errorf("%w: failed to list washers: %v", ErrInternal, err)
	}

	resp := &models.ListWashersResponse{Staff: make([]*models.WasherResponse, 0, len(washers))}
	for _, w := range washers {
		resp.Staff = append(resp.Staff, models.FromDomainWasher(w))
	}
	return resp, nil
}

// Create добавляет сотрудника в состав
func (s *Service) Create(ctx context.Context, req *models.CreateWasherRequest) (*models.WasherResponse, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxWasherNameLength {
		return nil, fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxWasherNameLength)
	}

	availability := domain.WasherOffDuty
	if req.Availability != nil {
		a, err := domain.ParseWasherAvailability(*req.Availability)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		availability = a
	}

	washer := &domain.Washer{
		ID:               uuid.NewString(),
		UserID:           userID,
		Name:             name,
		Availability:     availability,
		AssignedBookings: []string{},
	}

	if err := s.repo.CreateWasher(ctx, washer); err != nil {
		if errors.Is(err, storage.ErrDuplicateWasher) {
			return nil, ErrDuplicateWasher
		}
		s.logger.Error("CreateStaff: failed to create washer: %v", err)
		return nil, fmt.Errorf("%w: failed to create washer: %v", ErrInternal, err)
	}

	s.logger.Info("CreateStaff: washer id=%s added (%s)", washer.ID, washer.Availability)
	return models.FromDomainWasher(washer), nil
}

// UpdateAvailability меняет доступность сотрудника
func (s *Service) UpdateAvailability(ctx context.Context, id string, req *models.UpdateAvailabilityRequest) (*models.WasherResponse, error) {
	availability, err := domain.ParseWasherAvailability(req.Availability)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.SetWasherAvailability(ctx, id, availability); err != nil {
		return nil, s.mapRepoError("UpdateStaffAvailability", id, err)
	}

	washer, err := s.repo.GetWasher(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("UpdateStaffAvailability", id, err)
	}

	s.logger.Info("UpdateStaffAvailability: washer id=%s is now %s", id, availability)
	return models.FromDomainWasher(washer), nil
}

func (s *Service) mapRepoError(op, id string, err error) error {
	if errors.Is(err, storage.ErrWasherNotFound) {
		s.logger.Warn("%s: washer id=%s not found", op, id)
		return ErrWasherNotFound
	}
	s.logger.Error("%s: repository error for washer id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
