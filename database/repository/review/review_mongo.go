package reviewRepo

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

// MongoReviewRepo implements repository.ReviewRepository backed by MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo returns a repo bound to the reviews collection.
func NewMongoReviewRepo() *MongoReviewRepo {
	r := &MongoReviewRepo{coll: database.DB().Collection("reviews")}
	if err := r.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("review repo: %v", err))
	}
	return r
}

// ensureIndexes enforces the one-review-per-engagement rule at the store.
func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{
				{Key: "clientId", Value: 1},
				{Key: "stylistId", Value: 1},
				{Key: "bookingId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "stylistId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) Insert(ctx context.Context, review *models.Review) error {
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) ListByStylist(ctx context.Context, stylistID string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var reviews []models.Review
	err := repository.RetryRead(ctx, func() error {
		cursor, err := r.coll.Find(ctx, bson.M{"stylistId": stylistID}, opts)
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}
		defer cursor.Close(ctx)

		reviews = nil
		if err := cursor.All(ctx, &reviews); err != nil {
			return fmt.Errorf("failed to decode reviews: %w", err)
		}
		return nil
	})
	return reviews, err
}

// AverageForStylist computes the arithmetic mean score over all of the
// stylist's reviews with a single aggregation round trip.
func (r *MongoReviewRepo) AverageForStylist(ctx context.Context, stylistID string) (float64, int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"stylistId": stylistID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$score"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	var out []struct {
		Avg   float64 `bson:"avg"`
		Count int     `bson:"count"`
	}
	err := repository.RetryRead(ctx, func() error {
		cursor, err := r.coll.Aggregate(ctx, pipeline)
		if err != nil {
			return fmt.Errorf("aggregation failed: %w", err)
		}
		defer cursor.Close(ctx)

		out = nil
		if err := cursor.All(ctx, &out); err != nil {
			return fmt.Errorf("failed to decode aggregate: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	if len(out) == 0 {
		return 0, 0, nil
	}
	return out[0].Avg, out[0].Count, nil
}
