package capacity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

// Target слот, над которым выполняется операция
type Target struct {
	Date  time.Time
	Label types.SlotLabel
}

// Op одна операция над емкостью слота
//
// Locate вызывается внутри транзакции и определяет слот (например, перечитывая
// бронирование). Apply изменяет счетчики слота. Commit получает состояние слота
// до Apply и записывает связанные данные в той же транзакции
type Op struct {
	Name   string
	Locate func(ctx context.Context) (Target, error)
	Apply  func(slot *domain.TimeSlot) error
	Commit func(ctx context.Context, before domain.TimeSlot) error

	// SkipMissingSlot: если дня или слота нет, Apply пропускается, а Commit
	// вызывается с нулевым слотом
	SkipMissingSlot bool
}

// At возвращает Locate для заранее известного слота
func At(date time.Time, label types.SlotLabel) func(ctx context.Context) (Target, error) {
	return func(context.Context) (Target, error) {
		return Target{Date: domain.DateOnly(date), Label: label}, nil
	}
}

// Guard выполняет операции над емкостью слотов через условное обновление дня
// с ограниченным числом повторов
type Guard struct {
	days        DayRepository
	txManager   TransactionManager
	cache       Cache
	metrics     Metrics
	maxAttempts int
	logger      Logger
}

// NewGuard создает Guard. cache и metrics могут быть nil
func NewGuard(days DayRepository, txManager TransactionManager, cache Cache, metrics Metrics, maxAttempts int, logger Logger) *Guard {
	if maxAttempts < 1 {
		maxAttempts = domain.DefaultMaxAttempts
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Guard{
		days:        days,
		txManager:   txManager,
		cache:       cache,
		metrics:     metrics,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// MaxAttempts возвращает число попыток
func (g *Guard) MaxAttempts() int {
	return g.maxAttempts
}

// Run выполняет операцию. Каждая попытка: транзакция, Locate, чтение дня,
// Apply, условное обновление дня, Commit. Конфликт версии повторяет попытку
// целиком; после maxAttempts возвращается ErrContention
func (g *Guard) Run(ctx context.Context, op Op) error {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTimeout, op.Name, err)
		}

		var target Target
		touched := false

		err := g.txManager.Do(ctx, func(txCtx context.Context) error {
			t, err := op.Locate(txCtx)
			if err != nil {
				return err
			}
			target = t

			day, err := g.days.GetDay(txCtx, t.Date)
			if err != nil && !errors.Is(err, storage.ErrDayNotFound) {
				return fmt.Errorf("%w: get day %s: %v", ErrInternal, t.Date.Format(domain.DateFormat), err)
			}

			var slot *domain.TimeSlot
			if day != nil {
				slot, _ = day.Slot(t.Label)
			}
			if slot == nil {
				if !op.SkipMissingSlot {
					return fmt.Errorf("%w: %s %s", ErrSlotNotFound, t.Date.Format(domain.DateFormat), t.Label)
				}
				return op.Commit(txCtx, domain.TimeSlot{})
			}

			before := *slot
			if err := op.Apply(slot); err != nil {
				return err
			}

			if err := g.days.UpdateSlots(txCtx, day); err != nil {
				if errors.Is(err, storage.ErrVersionConflict) {
					return err
				}
				return fmt.Errorf("%w: update day %s: %v", ErrInternal, day.DateKey(), err)
			}
			touched = true

			return op.Commit(txCtx, before)
		})

		if err == nil {
			if touched {
				g.invalidate(ctx, target.Date)
			}
			return nil
		}

		if errors.Is(err, storage.ErrVersionConflict) {
			g.metrics.VersionConflict(op.Name)
			g.logger.Warn("%s: version conflict on %s, attempt %d/%d",
				op.Name, target.Date.Format(domain.DateFormat), attempt, g.maxAttempts)
			continue
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s: %v", ErrTimeout, op.Name, ctxErr)
		}

		return err
	}

	g.metrics.Contention(op.Name)
	g.logger.Error("%s: giving up after %d attempts", op.Name, g.maxAttempts)
	return fmt.Errorf("%w: %s after %d attempts", ErrContention, op.Name, g.maxAttempts)
}

func (g *Guard) invalidate(ctx context.Context, date time.Time) {
	if g.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), domain.CacheInvalidateTimeout)
	defer cancel()

	if err := g.cache.Invalidate(ctx, date); err != nil {
		g.logger.Warn("capacity: failed to invalidate cache for %s: %v", date.Format(domain.DateFormat), err)
	}
}

type nopMetrics struct{}

func (nopMetrics) VersionConflict(string) {}
func (nopMetrics) Contention(string)      {}
