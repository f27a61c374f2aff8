package booking

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
	table = "bookings"

	pqUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"user_id",
	"vehicle_id",
	"washer_id",
	"service_name",
	"service_price",
	"duration_minutes",
	"is_premium",
	"booking_date",
	"time_label",
	"status",
	"payment_method",
	"payment_status",
	"payment_amount",
	"promo_code",
	"loyalty_points_used",
	"license_plate",
	"rating",
	"review",
	"bay",
	"team",
	"cycle_code",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается в той же транзакции, что и условное обновление слота дня,
// поэтому при откате транзакции бронирование не сохраняется
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var bay sql.NullInt64
	var team, cycleCode sql.NullString
	if a := booking.Assignment; a != nil {
		bay = sql.NullInt64{Int64: int64(a.Bay), Valid: true}
		team = sql.NullString{String: a.Team, Valid: true}
		cycleCode = sql.NullString{String: a.CycleCode, Valid: true}
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"user_id",
			"vehicle_id",
			"service_name",
			"service_price",
			"duration_minutes",
			"is_premium",
			"booking_date",
			"time_label",
			"time_minutes",
			"status",
			"payment_method",
			"payment_status",
			"payment_amount",
			"promo_code",
			"loyalty_points_used",
			"license_plate",
			"bay",
			"team",
			"cycle_code",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.VehicleID,
			booking.ServiceName,
			booking.ServicePrice,
			booking.DurationMinutes,
			booking.IsPremium,
			booking.Date.Format(domain.DateFormat),
			booking.TimeLabel,
			booking.TimeLabel.MustMinutes(),
			booking.Status,
			booking.Payment.Method,
			booking.Payment.Status,
			booking.Payment.Amount,
			booking.PromoCode,
			booking.LoyaltyPointsUsed,
			booking.LicensePlate,
			bay,
			team,
			cycleCode,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrDuplicateBooking
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру
// Для конкретной даты сортирует по времени слота, иначе по времени создания (сначала новые)
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"booking_date": filter.Date.Format(domain.DateFormat)}).
			OrderBy("time_minutes ASC", "created_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("created_at DESC")
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus переводит бронирование из статуса from в статус to
// Если текущий статус уже не from, возвращает ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateStatus", query, args, ErrStatusConflict)
}

// SetRating сохраняет оценку и отзыв, если оценки ещё нет
func (r *Repository) SetRating(ctx context.Context, id string, rating int, review *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("rating", rating).
		Set("review", review).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "rating": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetRating - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "SetRating", query, args, ErrAlreadyRated)
}

// AssignWasher назначает сотрудника на бронирование
func (r *Repository) AssignWasher(ctx context.Context, id string, washerID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("washer_id", washerID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AssignWasher - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "AssignWasher", query, args, ErrBookingNotFound)
}

// execOne выполняет UPDATE и возвращает errNoRows, если строка не затронута
func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, errNoRows error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return errNoRows
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                   domain.Booking
		washerID, promoCode sql.NullString
		licensePlate        sql.NullString
		review, team, cycle sql.NullString
		rating, bay         sql.NullInt64
		createdAt, updAt    sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.VehicleID,
		&washerID,
		&b.ServiceName,
		&b.ServicePrice,
		&b.DurationMinutes,
		&b.IsPremium,
		&b.Date,
		&b.TimeLabel,
		&b.Status,
		&b.Payment.Method,
		&b.Payment.Status,
		&b.Payment.Amount,
		&promoCode,
		&b.LoyaltyPointsUsed,
		&licensePlate,
		&rating,
		&review,
		&bay,
		&team,
		&cycle,
		&createdAt,
		&updAt,
	)
	if err != nil {
		return nil, err
	}

	b.Date = domain.DateOnly(b.Date)
	b.WasherID = nullString(washerID)
	b.PromoCode = nullString(promoCode)
	b.LicensePlate = nullString(licensePlate)
	b.Review = nullString(review)
	if rating.Valid {
		v := int(rating.Int64)
		b.Rating = &v
	}
	if bay.Valid {
		b.Assignment = &domain.BayAssignment{Bay: int(bay.Int64), Team: team.String, CycleCode: cycle.String}
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updAt.Time

	return &b, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
