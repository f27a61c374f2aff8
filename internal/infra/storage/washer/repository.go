package washer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/psqlbuilder"
)

const (
	table = "washers"

	pqUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"user_id",
	"name",
	"availability",
	"assigned_bookings",
	"created_at",
	"updated_at",
}

// Repository репозиторий сотрудников автомойки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateWasher добавляет сотрудника
func (r *Repository) CreateWasher(ctx context.Context, w *domain.Washer) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "user_id", "name", "availability", "assigned_bookings").
		Values(w.ID, w.UserID, w.Name, w.Availability, pq.StringArray(w.AssignedBookings)).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateWasher - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrDuplicateWasher
		}
		return fmt.Errorf("%w: CreateWasher - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetWasher получает сотрудника по ID
func (r *Repository) GetWasher(ctx context.Context, id string) (*domain.Washer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWasher - build select query: %v", ErrBuildQuery, err)
	}

	w, err := scanWasher(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWasherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWasher - scan washer: %v", ErrScanRow, err)
	}

	return w, nil
}

// ListWashers получает сотрудников по имени, опционально с фильтром по доступности
func (r *Repository) ListWashers(ctx context.Context, availability *domain.WasherAvailability) ([]*domain.Washer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table).OrderBy("name ASC", "id ASC")
	if availability != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"availability": *availability})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWashers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWashers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	washers := make([]*domain.Washer, 0)
	for rows.Next() {
		w, err := scanWasher(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWashers - scan row: %v", ErrScanRow, err)
		}
		washers = append(washers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWashers - rows error: %v", ErrScanRow, err)
	}

	return washers, nil
}

// CountWashers считает сотрудников с заданной доступностью
func (r *Repository) CountWashers(ctx context.Context, availability domain.WasherAvailability) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"availability": availability}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountWashers - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountWashers - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// SetWasherAvailability меняет доступность сотрудника
func (r *Repository) SetWasherAvailability(ctx context.Context, id string, availability domain.WasherAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("availability", availability).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetWasherAvailability - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "SetWasherAvailability", query, args)
}

// AddWasherBooking добавляет бронирование в список сотрудника, если его там ещё нет
func (r *Repository) AddWasherBooking(ctx context.Context, id, bookingID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("assigned_bookings", squirrel.Expr(
			"CASE WHEN ?::text = ANY(assigned_bookings) THEN assigned_bookings ELSE array_append(assigned_bookings, ?::text) END",
			bookingID, bookingID,
		)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddWasherBooking - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "AddWasherBooking", query, args)
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrWasherNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWasher(row rowScanner) (*domain.Washer, error) {
	var (
		w        domain.Washer
		bookings pq.StringArray
	)

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Name,
		&w.Availability,
		&bookings,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.AssignedBookings = []string(bookings)
	return &w, nil
}
