package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"hairbook/database"
	"hairbook/database/repository"
	"hairbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements repository.BookingRepository backed by MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a repo bound to the bookings collection.
func NewMongoBookingRepo() *MongoBookingRepo {
	r := &MongoBookingRepo{coll: database.DB().Collection("bookings")}
	if err := r.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("booking repo: %v", err))
	}
	return r
}

func (r *MongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking *models.Booking
	err := repository.RetryRead(ctx, func() error {
		var doc models.Booking
		err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			booking = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to fetch booking %s: %w", id, err)
		}
		booking = &doc
		return nil
	})
	return booking, err
}

func (r *MongoBookingRepo) CountAcceptedAt(ctx context.Context, stylistID, date, timeOfDay string) (int64, error) {
	filter := bson.M{
		"stylistId": stylistID,
		"date":      date,
		"time":      timeOfDay,
		"status":    models.BookingAccepted,
	}
	var n int64
	err := repository.RetryRead(ctx, func() error {
		count, err := r.coll.CountDocuments(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to count accepted bookings: %w", err)
		}
		n = count
		return nil
	})
	return n, err
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNoMatch
	}
	return nil
}

func (r *MongoBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"clientId": clientID})
}

func (r *MongoBookingRepo) ListByStylist(ctx context.Context, stylistID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"stylistId": stylistID})
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	var bookings []models.Booking
	err := repository.RetryRead(ctx, func() error {
		cursor, err := r.coll.Find(ctx, filter, opts)
		if err != nil {
			return fmt.Errorf("failed to list bookings: %w", err)
		}
		defer cursor.Close(ctx)

		bookings = nil
		if err := cursor.All(ctx, &bookings); err != nil {
			return fmt.Errorf("failed to decode bookings: %w", err)
		}
		return nil
	})
	return bookings, err
}

// ListElapsedAccepted returns accepted bookings whose slot is before the
// given instant. The date field is lexicographically ordered, so the date
// bound prunes the scan; exact slot comparison happens on the decoded rows.
func (r *MongoBookingRepo) ListElapsedAccepted(ctx context.Context, before time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"status": models.BookingAccepted,
		"date":   bson.M{"$lte": before.Format(models.SlotDateLayout)},
	}
	candidates, err := r.list(ctx, filter)
	if err != nil {
		return nil, err
	}

	var elapsed []models.Booking
	for _, b := range candidates {
		slot, err := b.SlotTime()
		if err != nil {
			continue
		}
		if slot.Before(before) {
			elapsed = append(elapsed, b)
		}
	}
	return elapsed, nil
}
