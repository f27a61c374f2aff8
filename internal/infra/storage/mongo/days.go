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

type dayDocument struct {
	Date      string            `bson:"_id"`
	Slots     []domain.TimeSlot `bson:"slots"`
	Version   int64             `bson:"version"`
	UpdatedAt time.Time         `bson:"updatedAt"`
}

func (d *dayDocument) toDomain() (*domain.DayAvailability, error) {
	date, err := domain.ParseDate(d.Date)
	if err != nil {
		return nil, fmt.Errorf("decode day %q: %w", d.Date, err)
	}
	day := &domain.DayAvailability{
		Date:      date,
		Slots:     d.Slots,
		Version:   d.Version,
		UpdatedAt: d.UpdatedAt,
	}
	if day.Slots == nil {
		day.Slots = []domain.TimeSlot{}
	}
	day.SortSlots()
	return day, nil
}

// GetDay получает день по дате
func (s *Store) GetDay(ctx context.Context, date time.Time) (*domain.DayAvailability, error) {
	var doc dayDocument
	err := s.days.FindOne(ctx, bson.M{"_id": dateKey(date)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: GetDay: %w", err)
	}
	return doc.toDomain()
}

// ListDays получает существующие дни в диапазоне [from, to]
func (s *Store) ListDays(ctx context.Context, from, to time.Time) ([]*domain.DayAvailability, error) {
	filter := bson.M{"_id": bson.M{"$gte": dateKey(from), "$lte": dateKey(to)}}
	cursor, err := s.days.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: ListDays: %w", err)
	}

	var docs []dayDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: ListDays decode: %w", err)
	}

	days := make([]*domain.DayAvailability, 0, len(docs))
	for i := range docs {
		day, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// SeedDay создает или перезаписывает день, увеличивая версию
func (s *Store) SeedDay(ctx context.Context, day *domain.DayAvailability) error {
	update := bson.M{
		"$set": bson.M{"slots": day.Slots, "updatedAt": time.Now().UTC()},
		"$inc": bson.M{"version": int64(1)},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc dayDocument
	if err := s.days.FindOneAndUpdate(ctx, bson.M{"_id": dateKey(day.Date)}, update, opts).Decode(&doc); err != nil {
		return fmt.Errorf("mongo: SeedDay: %w", err)
	}

	day.Version = doc.Version
	day.UpdatedAt = doc.UpdatedAt
	return nil
}

// UpdateSlots сохраняет слоты при совпадении версии
func (s *Store) UpdateSlots(ctx context.Context, day *domain.DayAvailability) error {
	now := time.Now().UTC()
	filter := bson.M{"_id": dateKey(day.Date), "version": day.Version}
	update := bson.M{
		"$set": bson.M{"slots": day.Slots, "updatedAt": now},
		"$inc": bson.M{"version": int64(1)},
	}

	res, err := s.days.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongo: UpdateSlots: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrVersionConflict
	}

	day.Version++
	day.UpdatedAt = now
	return nil
}

// DeleteDay удаляет день
func (s *Store) DeleteDay(ctx context.Context, date time.Time) error {
	res, err := s.days.DeleteOne(ctx, bson.M{"_id": dateKey(date)})
	if err != nil {
		return fmt.Errorf("mongo: DeleteDay: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrDayNotFound
	}
	return nil
}

func dateKey(t time.Time) string {
	return t.Format(domain.DateFormat)
}
