package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/psqlbuilder"
)

const table = "business_settings"

// DBExecutor интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий бизнес-настроек (одна строка с id = 1)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущие настройки
func (r *Repository) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"booking_cutoff_hours",
		"max_advance_booking_days",
		"closed_weekdays",
		"payment_methods",
		"updated_at",
	).
		From(table).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s        domain.BusinessSettings
		weekdays pq.Int64Array
		methods  pq.StringArray
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.BookingCutoffHours,
		&s.MaxAdvanceBookingDays,
		&weekdays,
		&methods,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.ClosedWeekdays = make([]time.Weekday, 0, len(weekdays))
	for _, wd := range weekdays {
		s.ClosedWeekdays = append(s.ClosedWeekdays, time.Weekday(wd))
	}
	s.PaymentMethods = []string(methods)

	return &s, nil
}

// Upsert создает или обновляет настройки
func (r *Repository) Upsert(ctx context.Context, s *domain.BusinessSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weekdays := make(pq.Int64Array, 0, len(s.ClosedWeekdays))
	for _, wd := range s.ClosedWeekdays {
		weekdays = append(weekdays, int64(wd))
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "booking_cutoff_hours", "max_advance_booking_days", "closed_weekdays", "payment_methods").
		Values(1, s.BookingCutoffHours, s.MaxAdvanceBookingDays, weekdays, pq.StringArray(s.PaymentMethods)).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"booking_cutoff_hours = EXCLUDED.booking_cutoff_hours, " +
			"max_advance_booking_days = EXCLUDED.max_advance_booking_days, " +
			"closed_weekdays = EXCLUDED.closed_weekdays, " +
			"payment_methods = EXCLUDED.payment_methods, " +
			"updated_at = NOW() " +
			"RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.UpdatedAt); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
