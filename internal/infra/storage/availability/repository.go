package availability

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/psqlbuilder"
)

const table = "day_availability"

// Repository репозиторий доступности по дням (PostgreSQL)
// Слоты дня хранятся одним JSONB документом, version служит токеном
// оптимистической блокировки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDay получает день по дате
func (r *Repository) GetDay(ctx context.Context, date time.Time) (*domain.DayAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date", "slots", "version", "updated_at").
		From(table).
		Where(squirrel.Eq{"date": dateKey(date)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - build select query: %v", ErrBuildQuery, err)
	}

	day, err := scanDay(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - %v", ErrScanRow, err)
	}

	return day, nil
}

// ListDays получает существующие дни в диапазоне [from, to] по возрастанию даты
func (r *Repository) ListDays(ctx context.Context, from, to time.Time) ([]*domain.DayAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date", "slots", "version", "updated_at").
		From(table).
		Where(squirrel.GtOrEq{"date": dateKey(from)}).
		Where(squirrel.LtOrEq{"date": dateKey(to)}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.DayAvailability, 0)
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDays - %v", ErrScanRow, err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// SeedDay создает или полностью перезаписывает слоты дня
// Версия дня увеличивается, так что параллельные условные обновления отвалятся
func (r *Repository) SeedDay(ctx context.Context, day *domain.DayAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slots, err := json.Marshal(day.Slots)
	if err != nil {
		return fmt.Errorf("%w: SeedDay - %v", ErrEncodeSlots, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("date", "slots", "version").
		Values(dateKey(day.Date), string(slots), 1).
		Suffix("ON CONFLICT (date) DO UPDATE SET slots = EXCLUDED.slots, " +
			"version = " + table + ".version + 1, updated_at = NOW() " +
			"RETURNING version, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SeedDay - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&day.Version, &day.UpdatedAt); err != nil {
		return fmt.Errorf("%w: SeedDay - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateSlots сохраняет слоты дня при условии, что версия не изменилась
// При успехе day.Version увеличивается, иначе возвращается ErrVersionConflict
func (r *Repository) UpdateSlots(ctx context.Context, day *domain.DayAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slots, err := json.Marshal(day.Slots)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - %v", ErrEncodeSlots, err)
	}

	query, args, err := psqlbuilder.Update(table).
		Set("slots", string(slots)).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"date": dateKey(day.Date), "version": day.Version}).
		Suffix("RETURNING version, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.Version, &day.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteDay удаляет день целиком
func (r *Repository) DeleteDay(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"date": dateKey(date)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteDay - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteDay - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteDay - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDayNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDay(row rowScanner) (*domain.DayAvailability, error) {
	var (
		day   domain.DayAvailability
		raw   []byte
		date  time.Time
		updAt sql.NullTime
	)

	if err := row.Scan(&date, &raw, &day.Version, &updAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &day.Slots); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}

	day.Date = domain.DateOnly(date)
	day.UpdatedAt = updAt.Time
	day.SortSlots()

	return &day, nil
}

func dateKey(t time.Time) string {
	return t.Format(domain.DateFormat)
}
