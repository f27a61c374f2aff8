package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	daysCollection     = "day_availability"
	bookingsCollection = "bookings"
	settingsCollection = "settings"
	washersCollection  = "washers"
)

// Store хранилище поверх MongoDB
// Репозитории дней, бронирований, сотрудников и настроек, плюс транзакции через сессии
// (требуется replica set)
type Store struct {
	client   *mongo.Client
	days     *mongo.Collection
	bookings *mongo.Collection
	settings *mongo.Collection
	washers  *mongo.Collection
}

// Connect подключается к MongoDB и проверяет соединение
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri).SetTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return NewStore(client, database), nil
}

// NewStore создает хранилище на существующем клиенте
func NewStore(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:   client,
		days:     db.Collection(daysCollection),
		bookings: db.Collection(bookingsCollection),
		settings: db.Collection(settingsCollection),
		washers:  db.Collection(washersCollection),
	}
}

// EnsureIndexes создает индексы для выборок бронирований и сотрудников
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "timeMinutes", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create booking indexes: %w", err)
	}

	_, err = s.washers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "availability", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create washer indexes: %w", err)
	}
	return nil
}

// Ping проверяет соединение
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close закрывает соединение
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Do выполняет fn в транзакции MongoDB
// fn получает mongo.SessionContext, операции с ним идут в рамках сессии
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	return s.client.UseSession(ctx, func(sc mongo.SessionContext) error {
		_, err := sc.WithTransaction(sc, func(txCtx mongo.SessionContext) (interface{}, error) {
			return nil, fn(txCtx)
		})
		return err
	})
}
