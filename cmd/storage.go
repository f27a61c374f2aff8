package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/config"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage/migrations"
	mongoStore "github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage/mongo"
	settingsRepo "github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage/settings"
	washerRepo "github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage/washer"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/txmanager"
)

type dayStore interface {
	GetDay(ctx context.Context, date time.Time) (*domain.DayAvailability, error)
	ListDays(ctx context.Context, from, to time.Time) ([]*domain.DayAvailability, error)
	SeedDay(ctx context.Context, day *domain.DayAvailability) error
	UpdateSlots(ctx context.Context, day *domain.DayAvailability) error
	DeleteDay(ctx context.Context, date time.Time) error
}

type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error
	SetRating(ctx context.Context, id string, rating int, review *string) error
	AssignWasher(ctx context.Context, id string, washerID string) error
}

type washerStore interface {
	CreateWasher(ctx context.Context, w *domain.Washer) error
	GetWasher(ctx context.Context, id string) (*domain.Washer, error)
	ListWashers(ctx context.Context, availability *domain.WasherAvailability) ([]*domain.Washer, error)
	CountWashers(ctx context.Context, availability domain.WasherAvailability) (int, error)
	SetWasherAvailability(ctx context.Context, id string, availability domain.WasherAvailability) error
	AddWasherBooking(ctx context.Context, id, bookingID string) error
}

type settingsStore interface {
	Get(ctx context.Context) (*domain.BusinessSettings, error)
	Upsert(ctx context.Context, settings *domain.BusinessSettings) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// storageBackend набор репозиториев выбранного драйвера
type storageBackend struct {
	days     dayStore
	bookings bookingStore
	washers  washerStore
	settings settingsStore
	tx       txManager
	ping     func(ctx context.Context) error
	close    func()
}

// openStorage подключает хранилище согласно storage.driver
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics, stopMetricsCh <-chan struct{}) (*storageBackend, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		return openPostgres(ctx, cfg, log, m, stopMetricsCh)
	case config.StorageDriverMongo:
		return openMongo(ctx, cfg, log)
	case config.StorageDriverMemory:
		log.Warn("Using in-memory storage: data is lost on restart")
		store := memory.NewStore()
		return &storageBackend{
			days:     store,
			bookings: store,
			washers:  store,
			settings: store,
			tx:       store,
			ping:     store.Ping,
			close:    func() {},
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics, stopMetricsCh <-chan struct{}) (*storageBackend, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.MigrateOnStart {
		migrator, err := migrations.NewMigrator(db, log)
		if err != nil {
			db.Close()
			return nil, err
		}
		if err := migrator.Run(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	// Обёртка метрик безопасна и без коллектора
	wrappedDB := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopMetricsCh)
	if m != nil {
		log.Info("Database metrics collection started")
	}

	return &storageBackend{
		days:     availabilityRepo.NewRepository(wrappedDB),
		bookings: bookingRepo.NewRepository(wrappedDB),
		washers:  washerRepo.NewRepository(wrappedDB),
		settings: settingsRepo.NewRepository(wrappedDB),
		tx:       txmanager.NewTransactionManager(wrappedDB),
		ping:     wrappedDB.PingContext,
		close:    func() { db.Close() },
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storageBackend, error) {
	timeout := time.Duration(cfg.Mongo.Timeout) * time.Second

	store, err := mongoStore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, timeout)
	if err != nil {
		return nil, err
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		_ = store.Close(context.Background())
		return nil, err
	}
	log.Info("Successfully connected to MongoDB (db=%s)", cfg.Mongo.Database)

	return &storageBackend{
		days:     store,
		bookings: store,
		washers:  store,
		settings: store,
		tx:       store,
		ping:     store.Ping,
		close: func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := store.Close(closeCtx); err != nil {
				log.Error("Failed to disconnect from MongoDB: %v", err)
			}
		},
	}, nil
}
