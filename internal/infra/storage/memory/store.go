package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage"
)

type txKey struct{}

// Store хранилище в памяти процесса для локального запуска и тестов
// Реализует репозитории дней, бронирований, сотрудников и настроек, а также менеджер
// транзакций. Транзакции сериализуются, поэтому fn видит согласованное
// состояние и откат не требуется: все проверки выполняются до записи
type Store struct {
	txMu sync.Mutex

	mu       sync.RWMutex
	days     map[string]*domain.DayAvailability
	bookings map[string]*domain.Booking
	washers  map[string]*domain.Washer
	settings *domain.BusinessSettings
	now      func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		days:     make(map[string]*domain.DayAvailability),
		bookings: make(map[string]*domain.Booking),
		washers:  make(map[string]*domain.Washer),
		now:      time.Now,
	}
}

// Do выполняет fn эксклюзивно относительно других транзакций
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

// Ping всегда успешен
func (s *Store) Ping(context.Context) error {
	return nil
}

// ============================================================
// Days
// ============================================================

// GetDay получает день по дате
func (s *Store) GetDay(_ context.Context, date time.Time) (*domain.DayAvailability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day, ok := s.days[key(date)]
	if !ok {
		return nil, storage.ErrDayNotFound
	}
	return day.Clone(), nil
}

// ListDays получает существующие дни в диапазоне [from, to]
func (s *Store) ListDays(_ context.Context, from, to time.Time) ([]*domain.DayAvailability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fromKey, toKey := key(from), key(to)
	days := make([]*domain.DayAvailability, 0)
	for k, day := range s.days {
		if k >= fromKey && k <= toKey {
			days = append(days, day.Clone())
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days, nil
}

// SeedDay создает или перезаписывает день, увеличивая версию
func (s *Store) SeedDay(_ context.Context, day *domain.DayAvailability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	day.Version = 1
	if existing, ok := s.days[key(day.Date)]; ok {
		day.Version = existing.Version + 1
	}
	day.UpdatedAt = s.now()

	s.days[key(day.Date)] = day.Clone()
	return nil
}

// UpdateSlots сохраняет слоты при совпадении версии
func (s *Store) UpdateSlots(_ context.Context, day *domain.DayAvailability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.days[key(day.Date)]
	if !ok || existing.Version != day.Version {
		return storage.ErrVersionConflict
	}

	day.Version++
	day.UpdatedAt = s.now()

	s.days[key(day.Date)] = day.Clone()
	return nil
}

// DeleteDay удаляет день
func (s *Store) DeleteDay(_ context.Context, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.days[key(date)]; !ok {
		return storage.ErrDayNotFound
	}
	delete(s.days, key(date))
	return nil
}

// ============================================================
// Bookings
// ============================================================

// Create сохраняет новое бронирование
func (s *Store) Create(_ context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[booking.ID]; ok {
		return storage.ErrDuplicateBooking
	}

	now := s.now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	s.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

// GetByID получает бронирование по ID
func (s *Store) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

// List получает бронирования по фильтру
func (s *Store) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.Date != nil && key(b.Date) != key(*filter.Date) {
			continue
		}
		result = append(result, cloneBooking(b))
	}

	if filter.Date != nil {
		sort.SliceStable(result, func(i, j int) bool {
			mi, mj := result[i].TimeLabel.MustMinutes(), result[j].TimeLabel.MustMinutes()
			if mi != mj {
				return mi < mj
			}
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		})
	} else {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

// UpdateStatus переводит бронирование из from в to
func (s *Store) UpdateStatus(_ context.Context, id string, from, to domain.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	if b.Status != from {
		return storage.ErrStatusConflict
	}
	b.Status = to
	b.UpdatedAt = s.now()
	return nil
}

// SetRating сохраняет оценку, если её ещё нет
func (s *Store) SetRating(_ context.Context, id string, rating int, review *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	if b.Rating != nil {
		return storage.ErrAlreadyRated
	}
	b.Rating = &rating
	if review != nil {
		r := *review
		b.Review = &r
	}
	b.UpdatedAt = s.now()
	return nil
}

// AssignWasher назначает сотрудника
func (s *Store) AssignWasher(_ context.Context, id string, washerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	b.WasherID = &washerID
	b.UpdatedAt = s.now()
	return nil
}

// ============================================================
// Washers
// ============================================================

// CreateWasher добавляет сотрудника
func (s *Store) CreateWasher(_ context.Context, w *domain.Washer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.washers[w.ID]; ok {
		return storage.ErrDuplicateWasher
	}

	now := s.now()
	w.CreatedAt = now
	w.UpdatedAt = now
	s.washers[w.ID] = cloneWasher(w)
	return nil
}

// GetWasher получает сотрудника по ID
func (s *Store) GetWasher(_ context.Context, id string) (*domain.Washer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.washers[id]
	if !ok {
		return nil, storage.ErrWasherNotFound
	}
	return cloneWasher(w), nil
}

// ListWashers получает сотрудников по имени, опционально с фильтром по доступности
func (s *Store) ListWashers(_ context.Context, availability *domain.WasherAvailability) ([]*domain.Washer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Washer, 0, len(s.washers))
	for _, w := range s.washers {
		if availability != nil && w.Availability != *availability {
			continue
		}
		result = append(result, cloneWasher(w))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// CountWashers считает сотрудников с заданной доступностью
func (s *Store) CountWashers(_ context.Context, availability domain.WasherAvailability) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, w := range s.washers {
		if w.Availability == availability {
			count++
		}
	}
	return count, nil
}

// SetWasherAvailability меняет доступность сотрудника
func (s *Store) SetWasherAvailability(_ context.Context, id string, availability domain.WasherAvailability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.washers[id]
	if !ok {
		return storage.ErrWasherNotFound
	}
	w.Availability = availability
	w.UpdatedAt = s.now()
	return nil
}

// AddWasherBooking добавляет бронирование в список сотрудника, если его там ещё нет
func (s *Store) AddWasherBooking(_ context.Context, id, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.washers[id]
	if !ok {
		return storage.ErrWasherNotFound
	}
	if !w.HasBooking(bookingID) {
		w.AssignedBookings = append(w.AssignedBookings, bookingID)
		w.UpdatedAt = s.now()
	}
	return nil
}

// ============================================================
// Settings
// ============================================================

// Get получает настройки
func (s *Store) Get(context.Context) (*domain.BusinessSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, storage.ErrSettingsNotFound
	}
	c := cloneSettings(*s.settings)
	return &c, nil
}

// Upsert сохраняет настройки
func (s *Store) Upsert(_ context.Context, settings *domain.BusinessSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings.UpdatedAt = s.now()
	c := cloneSettings(*settings)
	s.settings = &c
	return nil
}

func key(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	c := *b
	c.WasherID = cloneString(b.WasherID)
	c.PromoCode = cloneString(b.PromoCode)
	c.LicensePlate = cloneString(b.LicensePlate)
	c.Review = cloneString(b.Review)
	if b.Rating != nil {
		r := *b.Rating
		c.Rating = &r
	}
	if b.Assignment != nil {
		a := *b.Assignment
		c.Assignment = &a
	}
	return &c
}

func cloneWasher(w *domain.Washer) *domain.Washer {
	c := *w
	c.AssignedBookings = append([]string(nil), w.AssignedBookings...)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneSettings(s domain.BusinessSettings) domain.BusinessSettings {
	s.ClosedWeekdays = append([]time.Weekday(nil), s.ClosedWeekdays...)
	s.PaymentMethods = append([]string(nil), s.PaymentMethods...)
	return s
}
