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

const settingsID = "business"

type settingsDocument struct {
	ID                    string    `bson:"_id"`
	BookingCutoffHours    int       `bson:"bookingCutoffHours"`
	MaxAdvanceBookingDays int       `bson:"maxAdvanceBookingDays"`
	ClosedWeekdays        []int     `bson:"closedWeekdays"`
	PaymentMethods        []string  `bson:"paymentMethods"`
	UpdatedAt             time.Time `bson:"updatedAt"`
}

// Get получает настройки
func (s *Store) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	var doc settingsDocument
	err := s.settings.FindOne(ctx, bson.M{"_id": settingsID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: Get settings: %w", err)
	}

	settings := &domain.BusinessSettings{
		BookingCutoffHours:    doc.BookingCutoffHours,
		MaxAdvanceBookingDays: doc.MaxAdvanceBookingDays,
		PaymentMethods:        doc.PaymentMethods,
		UpdatedAt:             doc.UpdatedAt,
	}
	for _, wd := range doc.ClosedWeekdays {
		settings.ClosedWeekdays = append(settings.ClosedWeekdays, time.Weekday(wd))
	}
	return settings, nil
}

// Upsert сохраняет настройки
func (s *Store) Upsert(ctx context.Context, settings *domain.BusinessSettings) error {
	doc := settingsDocument{
		ID:                    settingsID,
		BookingCutoffHours:    settings.BookingCutoffHours,
		MaxAdvanceBookingDays: settings.MaxAdvanceBookingDays,
		PaymentMethods:        settings.PaymentMethods,
		UpdatedAt:             time.Now().UTC(),
	}
	for _, wd := range settings.ClosedWeekdays {
		doc.ClosedWeekdays = append(doc.ClosedWeekdays, int(wd))
	}

	_, err := s.settings.ReplaceOne(ctx, bson.M{"_id": settingsID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo: Upsert settings: %w", err)
	}

	settings.UpdatedAt = doc.UpdatedAt
	return nil
}
