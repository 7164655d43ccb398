package stylistRepo

import (
	"context"
	"fmt"
	"regexp"

	"hairbook/database/repository"
	"hairbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SearchByLocation matches active stylists whose location text contains the
// given substring, case-insensitively. Results are ordered by id for
// deterministic paging.
func (r *MongoStylistRepo) SearchByLocation(ctx context.Context, locationSubstring string) ([]models.Stylist, error) {
	filter := bson.M{"status": models.StylistActive}
	if locationSubstring != "" {
		filter["location"] = bson.M{
			"$regex":   regexp.QuoteMeta(locationSubstring),
			"$options": "i",
		}
	}

	return r.find(ctx, filter, "location search failed")
}

// ListGeoLocated returns active stylists that have resolved coordinates.
func (r *MongoStylistRepo) ListGeoLocated(ctx context.Context) ([]models.Stylist, error) {
	filter := bson.M{
		"status":      models.StylistActive,
		"locationGeo": bson.M{"$exists": true, "$ne": nil},
	}

	return r.find(ctx, filter, "geo listing failed")
}

func (r *MongoStylistRepo) find(ctx context.Context, filter bson.M, what string) ([]models.Stylist, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	var stylists []models.Stylist
	err := repository.RetryRead(ctx, func() error {
		cursor, err := r.coll.Find(ctx, filter, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", what, err)
		}
		defer cursor.Close(ctx)

		stylists = nil
		if err := cursor.All(ctx, &stylists); err != nil {
			return fmt.Errorf("failed to decode stylists: %w", err)
		}
		return nil
	})
	return stylists, err
}
