package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	bookingModels "github.com/m04kA/SMC-AvailabilityLedger/internal/service/bookings/models"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/reports/models"
)

// Service отчеты для персонала
type Service struct {
	bookingRepo BookingRepository
	washers     WasherCounter
	logger      Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(bookingRepo BookingRepository, washers WasherCounter, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		washers:     washers,
		logger:      logger,
	}
}

// BookingsForDate возвращает бронирования даты по времени слота
func (s *Service) BookingsForDate(ctx context.Context, date time.Time) (*bookingModels.BookingListResponse, error) {
	bookings, err := s.forDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return bookingModels.FromDomainBookingList(bookings), nil
}

// RecentBookings возвращает последние созданные бронирования
func (s *Service) RecentBookings(ctx context.Context, limit int) (*bookingModels.BookingListResponse, error) {
	if limit == 0 {
		limit = domain.DefaultRecentBookingsLimit
	}
	if limit < 0 || limit > domain.MaxRecentLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, domain.MaxRecentLimit)
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{Limit: limit})
	if err != nil {
		s.logger.Error("RecentBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: RecentBookings - repository error: %v", ErrInternal, err)
	}
	return bookingModels.FromDomainBookingList(bookings), nil
}

// Dashboard возвращает сводку за дату
// Выручка считается только по завершенным бронированиям.
// ActiveStaff - сотрудники на смене в момент запроса, не на дату
func (s *Service) Dashboard(ctx context.Context, date time.Time) (*models.DashboardResponse, error) {
	bookings, err := s.forDate(ctx, date)
	if err != nil {
		return nil, err
	}

	active, err := s.washers.CountWashers(ctx, domain.WasherOnWork)
	if err != nil {
		s.logger.Error("Dashboard: failed to count active staff: %v", err)
		return nil, fmt.Errorf("%w: count staff: %v", ErrInternal, err)
	}

	resp := models.FromDomainStats(domain.ComputeStats(date, bookings))
	resp.ActiveStaff = active
	return resp, nil
}

// ExportBookings пишет бронирования даты в XLSX
func (s *Service) ExportBookings(ctx context.Context, date time.Time, w io.Writer) error {
	bookings, err := s.forDate(ctx, date)
	if err != nil {
		return err
	}

	s.logger.Info("ExportBookings: exporting %d bookings for %s", len(bookings), date.Format(domain.DateFormat))

	if err := writeBookingsXLSX(w, date.Format(domain.DateFormat), bookings); err != nil {
		s.logger.Error("ExportBookings: failed to write xlsx: %v", err)
		return fmt.Errorf("%w: export failed: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) forDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	d := domain.DateOnly(date)

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{Date: &d})
	if err != nil {
		s.logger.Error("Reports: repository error for %s: %v", d.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return bookings, nil
}
