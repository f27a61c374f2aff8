package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/bookings/models"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/capacity"
)

// Operation names for the capacity guard
const (
	opCancel        = "cancel_booking"
	opAdvanceStatus = "advance_status"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	washerRepo  WasherRepository
	guard       CapacityGuard
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	washerRepo WasherRepository,
	guard CapacityGuard,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		bookingRepo: bookingRepo,
		washerRepo:  washerRepo,
		guard:       guard,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только своё бронирование, персонал видит любое
func (s *Service) GetByID(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	if err := checkAccess(booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", actor.UserID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя, новые первыми
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	filter := domain.BookingsFilter{UserID: &req.UserID, Limit: req.Limit}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и возвращает место в слот
// Клиент может отменить только своё бронирование, персонал любое.
// Статус и счетчики слота меняются в одной транзакции с условным обновлением дня
func (s *Service) Cancel(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", id, actor.UserID)

	var cancelled *domain.Booking

	err := s.guard.Run(ctx, s.releaseOp(opCancel, id, func(b *domain.Booking) error {
		if err := checkAccess(b, actor); err != nil {
			return err
		}
		if b.IsCancelled() {
			return ErrAlreadyCancelled
		}
		if !domain.CanTransition(b.Status, domain.StatusCancelled) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, domain.StatusCancelled)
		}
		return nil
	}, &cancelled))
	if err != nil {
		return nil, s.mapLedgerError(ctx, "Cancel", id, err)
	}

	s.metrics.BookingCancelled()
	s.logger.Info("Cancel: booking id=%s cancelled, %s %s released", id, cancelled.Date.Format(domain.DateFormat), cancelled.TimeLabel)
	return models.FromDomainBooking(cancelled), nil
}

// AdvanceStatus переводит бронирование в новый статус по автомату состояний
// Переход в Cancelled возвращает место в слот так же, как Cancel
func (s *Service) AdvanceStatus(ctx context.Context, id string, req *models.AdvanceStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("AdvanceStatus: booking id=%s to status=%s", id, req.Status)

	to, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	checkTransition := func(b *domain.Booking) error {
		if !domain.CanTransition(b.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
		}
		return nil
	}

	var updated *domain.Booking

	if to == domain.StatusCancelled {
		if err := s.guard.Run(ctx, s.releaseOp(opAdvanceStatus, id, checkTransition, &updated)); err != nil {
			return nil, s.mapLedgerError(ctx, "AdvanceStatus", id, err)
		}
		s.metrics.BookingCancelled()
	} else {
		err = s.txManager.Do(ctx, func(txCtx context.Context) error {
			b, err := s.bookingRepo.GetByID(txCtx, id)
			if err != nil {
				return err
			}
			if err := checkTransition(b); err != nil {
				return err
			}
			if err := s.bookingRepo.UpdateStatus(txCtx, id, b.Status, to); err != nil {
				return err
			}
			b.Status = to
			updated = b
			return nil
		})
		if err != nil {
			return nil, s.mapLedgerError(ctx, "AdvanceStatus", id, err)
		}
	}

	s.logger.Info("AdvanceStatus: booking id=%s is now %s", id, to)
	return models.FromDomainBooking(updated), nil
}

// Rate сохраняет оценку завершенного бронирования
// Оценить можно только своё бронирование и только один раз
func (s *Service) Rate(ctx context.Context, id string, req *models.RateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Rate: booking id=%s by user=%s rating=%d", id, req.UserID, req.Rating)

	// 1. Валидация
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	var review *string
	if req.Review != nil {
		r := strings.TrimSpace(*req.Review)
		if utf8.RuneCountInString(r) > domain.MaxReviewLength {
			return nil, fmt.Errorf("%w: review exceeds %d characters", ErrInvalidInput, domain.MaxReviewLength)
		}
		if r != "" {
			review = &r
		}
	}

	var rated *domain.Booking

	// 2. Проверка статуса и запись в одной транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := checkAccess(b, models.Actor{UserID: req.UserID}); err != nil {
			return err
		}
		if !b.CanBeRated() {
			return fmt.Errorf("%w: status is %s", ErrInvalidState, b.Status)
		}
		if b.IsRated() {
			return ErrAlreadyRated
		}
		if err := s.bookingRepo.SetRating(txCtx, id, req.Rating, review); err != nil {
			return err
		}
		b.Rating = &req.Rating
		b.Review = review
		rated = b
		return nil
	})
	if err != nil {
		return nil, s.mapLedgerError(ctx, "Rate", id, err)
	}

	s.logger.Info("Rate: booking id=%s rated %d", id, req.Rating)
	return models.FromDomainBooking(rated), nil
}

// AssignWasher назначает сотрудника на бронирование
// Сотрудник должен существовать, бронирование не должно быть отменено или завершено.
// Бронирование добавляется в список сотрудника в той же транзакции
func (s *Service) AssignWasher(ctx context.Context, id string, req *models.AssignWasherRequest) (*models.BookingResponse, error) {
	washerID := strings.TrimSpace(req.WasherID)
	if washerID == "" {
		return nil, fmt.Errorf("%w: washerId is required", ErrInvalidInput)
	}

	var assigned *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if b.Status.IsTerminal() {
			return fmt.Errorf("%w: status is %s", ErrNotAssignable, b.Status)
		}

		if _, err := s.washerRepo.GetWasher(txCtx, washerID); err != nil {
			if errors.Is(err, storage.ErrWasherNotFound) {
				return fmt.Errorf("%w: id=%s", ErrWasherNotFound, washerID)
			}
			return err
		}

		if err := s.bookingRepo.AssignWasher(txCtx, id, washerID); err != nil {
			return err
		}
		if err := s.washerRepo.AddWasherBooking(txCtx, washerID, id); err != nil {
			return err
		}

		b.WasherID = &washerID
		assigned = b
		return nil
	})
	if err != nil {
		return nil, s.mapLedgerError(ctx, "AssignWasher", id, err)
	}

	s.logger.Info("AssignWasher: booking id=%s assigned to washer=%s", id, washerID)
	return models.FromDomainBooking(assigned), nil
}

// releaseOp строит операцию отмены: перечитывает бронирование в транзакции,
// проверяет check, освобождает место и меняет статус на Cancelled
// Если день или слот удалены, статус меняется без освобождения места
func (s *Service) releaseOp(name, id string, check func(b *domain.Booking) error, out **domain.Booking) capacity.Op {
	var booking *domain.Booking

	return capacity.Op{
		Name: name,
		Locate: func(ctx context.Context) (capacity.Target, error) {
			b, err := s.bookingRepo.GetByID(ctx, id)
			if err != nil {
				return capacity.Target{}, err
			}
			if err := check(b); err != nil {
				return capacity.Target{}, err
			}
			booking = b
			return capacity.Target{Date: b.Date, Label: b.TimeLabel}, nil
		},
		Apply: func(slot *domain.TimeSlot) error {
			slot.Release(booking.IsPremium)
			return nil
		},
		Commit: func(ctx context.Context, _ domain.TimeSlot) error {
			if err := s.bookingRepo.UpdateStatus(ctx, id, booking.Status, domain.StatusCancelled); err != nil {
				if errors.Is(err, storage.ErrStatusConflict) {
					// статус изменился после чтения: повторяем попытку целиком
					return fmt.Errorf("%w: %v", storage.ErrVersionConflict, err)
				}
				return err
			}
			booking.Status = domain.StatusCancelled
			*out = booking
			return nil
		},
		SkipMissingSlot: true,
	}
}

func (s *Service) mapRepoError(op, id string, err error) error {
	if errors.Is(err, storage.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%s not found", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// mapLedgerError переводит ошибки транзакции и Guard в ошибки сервиса
func (s *Service) mapLedgerError(ctx context.Context, op, id string, err error) error {
	switch {
	case errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrAlreadyCancelled),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrAlreadyRated),
		errors.Is(err, ErrWasherNotFound),
		errors.Is(err, ErrNotAssignable):
		s.logger.Warn("%s: booking id=%s: %v", op, id, err)
		return err
	case errors.Is(err, storage.ErrAlreadyRated):
		s.logger.Warn("%s: booking id=%s already rated", op, id)
		return ErrAlreadyRated
	case errors.Is(err, storage.ErrStatusConflict):
		s.logger.Warn("%s: booking id=%s changed concurrently", op, id)
		return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
	case errors.Is(err, capacity.ErrContention):
		return fmt.Errorf("%w: %v", ErrContention, err)
	case errors.Is(err, capacity.ErrTimeout):
		s.logger.Warn("%s: booking id=%s: outcome unknown: %v", op, id, err)
		return ErrTimeout
	}

	if ctx.Err() != nil {
		s.logger.Warn("%s: booking id=%s: outcome unknown: %v", op, id, err)
		return ErrTimeout
	}

	return s.mapRepoError(op, id, err)
}

// checkAccess проверяет, что пользователь владелец бронирования или персонал
func checkAccess(b *domain.Booking, actor models.Actor) error {
	if actor.Staff || b.UserID == actor.UserID {
		return nil
	}
	return ErrAccessDenied
}

type nopMetrics struct{}

func (nopMetrics) BookingCancelled() {}
