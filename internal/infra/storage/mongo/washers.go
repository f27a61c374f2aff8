package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/infra/storage"
)

type washerDocument struct {
	ID               string    `bson:"_id"`
	UserID           string    `bson:"userId"`
	Name             string    `bson:"name"`
	Availability     string    `bson:"availability"`
	AssignedBookings []string  `bson:"assignedBookings"`
	CreatedAt        time.Time `bson:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt"`
}

func (d *washerDocument) toDomain() *domain.Washer {
	bookings := d.AssignedBookings
	if bookings == nil {
		bookings = []string{}
	}
	return &domain.Washer{
		ID:               d.ID,
		UserID:           d.UserID,
		Name:             d.Name,
		Availability:     domain.WasherAvailability(d.Availability),
		AssignedBookings: bookings,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// CreateWasher добавляет сотрудника
func (s *Store) CreateWasher(ctx context.Context, w *domain.Washer) error {
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	bookings := w.AssignedBookings
	if bookings == nil {
		bookings = []string{}
	}

	_, err := s.washers.InsertOne(ctx, washerDocument{
		ID:               w.ID,
		UserID:           w.UserID,
		Name:             w.Name,
		Availability:     string(w.Availability),
		AssignedBookings: bookings,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storage.ErrDuplicateWasher
		}
		return fmt.Errorf("mongo: CreateWasher: %w", err)
	}
	return nil
}

// GetWasher получает сотрудника по ID
func (s *Store) GetWasher(ctx context.Context, id string) (*domain.Washer, error) {
	var doc washerDocument
	err := s.washers.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrWasherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: GetWasher: %w", err)
	}
	return doc.toDomain(), nil
}

// ListWashers получает сотрудников по имени, опционально с фильтром по доступности
func (s *Store) ListWashers(ctx context.Context, availability *domain.WasherAvailability) ([]*domain.Washer, error) {
	query := bson.M{}
	if availability != nil {
		query["availability"] = string(*availability)
	}

	cursor, err := s.washers.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: ListWashers: %w", err)
	}

	var docs []washerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: ListWashers decode: %w", err)
	}

	result := make([]*domain.Washer, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toDomain())
	}
	return result, nil
}

// CountWashers считает сотрудников с заданной доступностью
func (s *Store) CountWashers(ctx context.Context, availability domain.WasherAvailability) (int, error) {
	n, err := s.washers.CountDocuments(ctx, bson.M{"availability": string(availability)})
	if err != nil {
		return 0, fmt.Errorf("mongo: CountWashers: %w", err)
	}
	return int(n), nil
}

// SetWasherAvailability меняет доступность сотрудника
func (s *Store) SetWasherAvailability(ctx context.Context, id string, availability domain.WasherAvailability) error {
	return s.updateWasher(ctx, "SetWasherAvailability", id,
		bson.M{"$set": bson.M{"availability": string(availability), "updatedAt": time.Now().UTC()}})
}

// AddWasherBooking добавляет бронирование в список сотрудника, если его там ещё нет
func (s *Store) AddWasherBooking(ctx context.Context, id, bookingID string) error {
	return s.updateWasher(ctx, "AddWasherBooking", id, bson.M{
		"$addToSet": bson.M{"assignedBookings": bookingID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (s *Store) updateWasher(ctx context.Context, op, id string, update bson.M) error {
	res, err := s.washers.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("mongo: %s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrWasherNotFound
	}
	return nil
}
