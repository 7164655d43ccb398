package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"hairbook/database/repository"
	"hairbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AcceptIfFree transitions a pending booking to accepted inside a session
// transaction. The slot check and the status write commit together, and the
// partial unique index on accepted (stylistId, date, time) backstops the
// invariant should two transactions race to commit: the loser's commit fails
// with a duplicate key error.
func (r *MongoBookingRepo) AcceptIfFree(ctx context.Context, bookingID string) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		var booking models.Booking
		if err := r.coll.FindOne(sc, bson.M{"id": bookingID}).Decode(&booking); err != nil {
			if err == mongo.ErrNoDocuments {
				return repository.ErrNoMatch
			}
			return fmt.Errorf("failed to fetch booking: %w", err)
		}

		held, err := r.coll.CountDocuments(sc, bson.M{
			"stylistId": booking.StylistID,
			"date":      booking.Date,
			"time":      booking.Time,
			"status":    models.BookingAccepted,
		})
		if err != nil {
			return fmt.Errorf("failed to check slot: %w", err)
		}
		if held > 0 {
			return repository.ErrSlotTaken
		}

		res, err := r.coll.UpdateOne(sc,
			bson.M{"id": bookingID, "status": models.BookingPending},
			bson.M{"$set": bson.M{"status": models.BookingAccepted, "updatedAt": time.Now()}},
		)
		if err != nil {
			return fmt.Errorf("failed to accept booking: %w", err)
		}
		if res.MatchedCount == 0 {
			return repository.ErrNoMatch
		}
		return nil
	}

	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sess.StartTransaction(); err != nil {
			return fmt.Errorf("could not start transaction: %w", err)
		}
		if err := txnFn(sc); err != nil {
			_ = sess.AbortTransaction(sc)
			return err
		}
		return sess.CommitTransaction(sc)
	})
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrSlotTaken
	}
	return err
}
