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
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/types"
)

type paymentDocument struct {
	Method string  `bson:"method"`
	Status string  `bson:"status"`
	Amount float64 `bson:"amount"`
}

type assignmentDocument struct {
	Bay       int    `bson:"bay"`
	Team      string `bson:"team"`
	CycleCode string `bson:"cycleCode"`
}

type bookingDocument struct {
	ID                string              `bson:"_id"`
	UserID            string              `bson:"userId"`
	VehicleID         string              `bson:"vehicleId"`
	WasherID          *string             `bson:"washerId,omitempty"`
	ServiceName       string              `bson:"serviceName"`
	ServicePrice      float64             `bson:"servicePrice"`
	DurationMinutes   int                 `bson:"durationMinutes"`
	IsPremium         bool                `bson:"isPremium"`
	Date              string              `bson:"date"`
	Time              string              `bson:"time"`
	TimeMinutes       int                 `bson:"timeMinutes"`
	Status            string              `bson:"status"`
	Payment           paymentDocument     `bson:"payment"`
	PromoCode         *string             `bson:"promoCode,omitempty"`
	LoyaltyPointsUsed int                 `bson:"loyaltyPointsUsed"`
	LicensePlate      *string             `bson:"licensePlate,omitempty"`
	Rating            *int                `bson:"rating"`
	Review            *string             `bson:"review,omitempty"`
	Assignment        *assignmentDocument `bson:"assignment,omitempty"`
	CreatedAt         time.Time           `bson:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt"`
}

func fromDomainBooking(b *domain.Booking) bookingDocument {
	doc := bookingDocument{
		ID:              b.ID,
		UserID:          b.UserID,
		VehicleID:       b.VehicleID,
		WasherID:        b.WasherID,
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		DurationMinutes: b.DurationMinutes,
		IsPremium:       b.IsPremium,
		Date:            dateKey(b.Date),
		Time:            b.TimeLabel.String(),
		TimeMinutes:     b.TimeLabel.MustMinutes(),
		Status:          string(b.Status),
		Payment: paymentDocument{
			Method: b.Payment.Method,
			Status: string(b.Payment.Status),
			Amount: b.Payment.Amount,
		},
		PromoCode:         b.PromoCode,
		LoyaltyPointsUsed: b.LoyaltyPointsUsed,
		LicensePlate:      b.LicensePlate,
		Rating:            b.Rating,
		Review:            b.Review,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
	if a := b.Assignment; a != nil {
		doc.Assignment = &assignmentDocument{Bay: a.Bay, Team: a.Team, CycleCode: a.CycleCode}
	}
	return doc
}

func (d *bookingDocument) toDomain() (*domain.Booking, error) {
	date, err := domain.ParseDate(d.Date)
	if err != nil {
		return nil, fmt.Errorf("decode booking %s date: %w", d.ID, err)
	}

	b := &domain.Booking{
		ID:              d.ID,
		UserID:          d.UserID,
		VehicleID:       d.VehicleID,
		WasherID:        d.WasherID,
		ServiceName:     d.ServiceName,
		ServicePrice:    d.ServicePrice,
		DurationMinutes: d.DurationMinutes,
		IsPremium:       d.IsPremium,
		Date:            date,
		TimeLabel:       types.SlotLabel(d.Time),
		Status:          domain.BookingStatus(d.Status),
		Payment: domain.Payment{
			Method: d.Payment.Method,
			Status: domain.PaymentStatus(d.Payment.Status),
			Amount: d.Payment.Amount,
		},
		PromoCode:         d.PromoCode,
		LoyaltyPointsUsed: d.LoyaltyPointsUsed,
		LicensePlate:      d.LicensePlate,
		Rating:            d.Rating,
		Review:            d.Review,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if a := d.Assignment; a != nil {
		b.Assignment = &domain.BayAssignment{Bay: a.Bay, Team: a.Team, CycleCode: a.CycleCode}
	}
	return b, nil
}

// Create сохраняет новое бронирование
func (s *Store) Create(ctx context.Context, booking *domain.Booking) error {
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := s.bookings.InsertOne(ctx, fromDomainBooking(booking)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storage.ErrDuplicateBooking
		}
		return fmt.Errorf("mongo: Create booking: %w", err)
	}
	return nil
}

// GetByID получает бронирование по ID
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var doc bookingDocument
	err := s.bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: GetByID: %w", err)
	}
	return doc.toDomain()
}

// List получает бронирования по фильтру
func (s *Store) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	query := bson.M{}
	opts := options.Find()

	if filter.UserID != nil {
		query["userId"] = *filter.UserID
	}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}
	if filter.Date != nil {
		query["date"] = dateKey(*filter.Date)
		opts.SetSort(bson.D{{Key: "timeMinutes", Value: 1}, {Key: "createdAt", Value: 1}})
	} else {
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := s.bookings.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: List bookings: %w", err)
	}

	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: List bookings decode: %w", err)
	}

	result := make([]*domain.Booking, 0, len(docs))
	for i := range docs {
		b, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, nil
}

// UpdateStatus переводит бронирование из from в to
func (s *Store) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	res, err := s.bookings.UpdateOne(ctx,
		bson.M{"_id": id, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to), "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("mongo: UpdateStatus: %w", err)
	}
	if res.MatchedCount == 0 {
		return s.missOr(ctx, id, storage.ErrStatusConflict)
	}
	return nil
}

// SetRating сохраняет оценку, если её ещё нет
func (s *Store) SetRating(ctx context.Context, id string, rating int, review *string) error {
	res, err := s.bookings.UpdateOne(ctx,
		bson.M{"_id": id, "rating": nil},
		bson.M{"$set": bson.M{"rating": rating, "review": review, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("mongo: SetRating: %w", err)
	}
	if res.MatchedCount == 0 {
		return s.missOr(ctx, id, storage.ErrAlreadyRated)
	}
	return nil
}

// AssignWasher назначает сотрудника
func (s *Store) AssignWasher(ctx context.Context, id string, washerID string) error {
	res, err := s.bookings.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"washerId": washerID, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("mongo: AssignWasher: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrBookingNotFound
	}
	return nil
}

// missOr возвращает ErrBookingNotFound, если документа нет, иначе conflict
func (s *Store) missOr(ctx context.Context, id string, conflict error) error {
	n, err := s.bookings.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo: count booking: %w", err)
	}
	if n == 0 {
		return storage.ErrBookingNotFound
	}
	return conflict
}
