package availability

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/availability/models"
)

// openDatesPageDays размер страницы при обходе диапазона listOpenDates
const openDatesPageDays = 31

// Service сервис доступности дней
type Service struct {
	days           DayRepository
	cache          Cache
	settings       SettingsProvider
	template       SlotTemplate
	premiumPerSlot int
	logger         Logger
}

// NewService создает новый экземпляр сервиса. cache может быть nil
func NewService(
	days DayRepository,
	cache Cache,
	settings SettingsProvider,
	template SlotTemplate,
	premiumPerSlot int,
	logger Logger,
) *Service {
	return &Service{
		days:           days,
		cache:          cache,
		settings:       settings,
		template:       template,
		premiumPerSlot: premiumPerSlot,
		logger:         logger,
	}
}

// GetDay возвращает день; при включенном кеше читает через него
func (s *Service) GetDay(ctx context.Context, date time.Time) (*domain.DayAvailability, error) {
	date = domain.DateOnly(date)

	var (
		generation int64
		cacheable  bool
	)
	if s.cache != nil {
		if day, err := s.cache.Get(ctx, date); err == nil {
			return day, nil
		}
		gen, err := s.cache.Generation(ctx, date)
		if err != nil {
			s.logger.Warn("GetDay: failed to read cache generation for %s: %v", date.Format(domain.DateFormat), err)
		} else {
			generation, cacheable = gen, true
		}
	}

	day, err := s.days.GetDay(ctx, date)
	if err != nil {
		if errors.Is(err, storage.ErrDayNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrDayNotFound, date.Format(domain.DateFormat))
		}
		s.logger.Error("GetDay: failed to get day %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get day: %v", ErrInternal, err)
	}

	if cacheable {
		if _, err := s.cache.Set(ctx, day, generation); err != nil {
			s.logger.Warn("GetDay: failed to cache day %s: %v", day.DateKey(), err)
		}
	}

	return day, nil
}

// SeedDay создает или перезаписывает день заданными слотами
func (s *Service) SeedDay(ctx context.Context, date time.Time, slots []domain.TimeSlot) (*domain.DayAvailability, error) {
	s.logger.Info("SeedDay: date=%s, slots=%d", date.Format(domain.DateFormat), len(slots))

	day, err := domain.NewDay(date, slots)
	if err != nil {
		s.logger.Warn("SeedDay: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.days.SeedDay(ctx, day); err != nil {
		s.logger.Error("SeedDay: failed to seed day %s: %v", day.DateKey(), err)
		return nil, fmt.Errorf("%w: failed to seed day: %v", ErrInternal, err)
	}

	s.invalidate(ctx, day.Date)
	s.logger.Info("SeedDay: day %s seeded, version=%d", day.DateKey(), day.Version)
	return day, nil
}

// SeedRange заполняет дни диапазона [From, To] слотами из расписания
// Выходные дни бизнеса заводятся без слотов и поэтому закрыты.
// При Overwrite день с занятыми местами не перезаписывается и попадает в Held
func (s *Service) SeedRange(ctx context.Context, req *models.SeedRangeRequest) (*models.SeedRangeResult, error) {
	from, to := domain.DateOnly(req.From), domain.DateOnly(req.To)
	s.logger.Info("SeedRange: from=%s, to=%s, overwrite=%t",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat), req.Overwrite)

	// 1. Валидация диапазона
	if err := validateRange(from, to, domain.MaxSeedRangeDays); err != nil {
		s.logger.Warn("SeedRange: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем настройки (выходные дни)
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Существующие дни
	days, err := s.days.ListDays(ctx, from, to)
	if err != nil {
		s.logger.Error("SeedRange: failed to list days: %v", err)
		return nil, fmt.Errorf("%w: failed to list days: %v", ErrInternal, err)
	}
	existing := make(map[string]*domain.DayAvailability, len(days))
	for _, d := range days {
		existing[d.DateKey()] = d
	}

	result := &models.SeedRangeResult{}
	template := s.template.DaySlots(s.premiumPerSlot)

	// 4. Заполняем дни
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		current, found := existing[date.Format(domain.DateFormat)]
		if found && !req.Overwrite {
			result.Skipped = append(result.Skipped, date)
			continue
		}

		slots := template
		if settings.IsClosedOn(date) {
			slots = nil
		}

		day, err := domain.NewDay(date, slots)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid slot template: %v", ErrInternal, err)
		}

		if found {
			replaced, err := s.replaceIdleDay(ctx, current, day.Slots)
			if err != nil {
				s.logger.Error("SeedRange: failed to overwrite day %s: %v", day.DateKey(), err)
				return nil, fmt.Errorf("%w: failed to overwrite day %s: %v", ErrInternal, day.DateKey(), err)
			}
			if !replaced {
				s.logger.Warn("SeedRange: day %s holds bookings, not overwritten", day.DateKey())
				result.Held = append(result.Held, date)
				continue
			}
		} else if err := s.days.SeedDay(ctx, day); err != nil {
			s.logger.Error("SeedRange: failed to seed day %s: %v", day.DateKey(), err)
			return nil, fmt.Errorf("%w: failed to seed day %s: %v", ErrInternal, day.DateKey(), err)
		}
		s.invalidate(ctx, date)

		if len(slots) == 0 {
			result.Closed = append(result.Closed, date)
		} else {
			result.Seeded = append(result.Seeded, date)
		}
	}

	s.logger.Info("SeedRange: seeded=%d, closed=%d, skipped=%d, held=%d",
		len(result.Seeded), len(result.Closed), len(result.Skipped), len(result.Held))
	return result, nil
}

// replaceIdleDay заменяет слоты существующего дня, если в нем нет занятых мест.
// Запись условная по версии: бронирование, зафиксированное между чтением и
// записью, приводит к перечитыванию дня. Возвращает false, если день занят
func (s *Service) replaceIdleDay(ctx context.Context, day *domain.DayAvailability, slots []domain.TimeSlot) (bool, error) {
	date := day.Date

	for attempt := 1; ; attempt++ {
		if day.HoldsBookings() {
			return false, nil
		}

		next := day.Clone()
		next.Slots = slots
		err := s.days.UpdateSlots(ctx, next)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, storage.ErrVersionConflict) || attempt >= domain.DefaultMaxAttempts {
			return false, err
		}

		day, err = s.days.GetDay(ctx, date)
		if errors.Is(err, storage.ErrDayNotFound) {
			// день удалили между чтением и записью
			fresh, err := domain.NewDay(date, slots)
			if err != nil {
				return false, err
			}
			return true, s.days.SeedDay(ctx, fresh)
		}
		if err != nil {
			return false, err
		}
	}
}

// DeleteDay удаляет день
func (s *Service) DeleteDay(ctx context.Context, date time.Time) error {
	date = domain.DateOnly(date)
	s.logger.Info("DeleteDay: date=%s", date.Format(domain.DateFormat))

	if err := s.days.DeleteDay(ctx, date); err != nil {
		if errors.Is(err, storage.ErrDayNotFound) {
			return fmt.Errorf("%w: %s", ErrDayNotFound, date.Format(domain.DateFormat))
		}
		s.logger.Error("DeleteDay: failed to delete day %s: %v", date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: failed to delete day: %v", ErrInternal, err)
	}

	s.invalidate(ctx, date)
	return nil
}

// ListOpenDates лениво перечисляет открытые даты диапазона [from, to]
// Диапазон читается страницами по openDatesPageDays дней; обход прекращается,
// как только потребитель перестает читать. Результат не кешируется
func (s *Service) ListOpenDates(ctx context.Context, from, to time.Time) iter.Seq2[time.Time, error] {
	from, to = domain.DateOnly(from), domain.DateOnly(to)

	return func(yield func(time.Time, error) bool) {
		if err := validateRange(from, to, domain.MaxOpenDatesRange); err != nil {
			yield(time.Time{}, err)
			return
		}

		for pageStart := from; !pageStart.After(to); pageStart = pageStart.AddDate(0, 0, openDatesPageDays) {
			pageEnd := pageStart.AddDate(0, 0, openDatesPageDays-1)
			if pageEnd.After(to) {
				pageEnd = to
			}

			days, err := s.days.ListDays(ctx, pageStart, pageEnd)
			if err != nil {
				s.logger.Error("ListOpenDates: failed to list days %s..%s: %v",
					pageStart.Format(domain.DateFormat), pageEnd.Format(domain.DateFormat), err)
				yield(time.Time{}, fmt.Errorf("%w: failed to list days: %v", ErrInternal, err))
				return
			}

			for _, day := range days {
				if !day.IsOpen() {
					continue
				}
				if !yield(day.Date, nil) {
					return
				}
			}
		}
	}
}

func (s *Service) invalidate(ctx context.Context, date time.Time) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), domain.CacheInvalidateTimeout)
	defer cancel()

	if err := s.cache.Invalidate(ctx, date); err != nil {
		s.logger.Warn("availability: failed to invalidate cache for %s: %v", date.Format(domain.DateFormat), err)
	}
}

func validateRange(from, to time.Time, maxDays int) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > maxDays {
		return fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidInput, days, maxDays)
	}
	return nil
}
