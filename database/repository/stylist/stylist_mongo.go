package stylistRepo

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

// MongoStylistRepo implements repository.StylistRepository backed by MongoDB.
type MongoStylistRepo struct {
	coll *mongo.Collection
}

// NewMongoStylistRepo returns a repo bound to the stylists collection.
func NewMongoStylistRepo() *MongoStylistRepo {
	r := &MongoStylistRepo{coll: database.DB().Collection("stylists")}
	if err := r.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("stylist repo: %v", err))
	}
	return r
}

func (r *MongoStylistRepo) Upsert(ctx context.Context, stylist *models.Stylist) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"accountId": stylist.AccountID}, stylist, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to upsert stylist: %w", err)
	}
	return nil
}

func (r *MongoStylistRepo) GetByID(ctx context.Context, id string) (*models.Stylist, error) {
	var stylist *models.Stylist
	err := repository.RetryRead(ctx, func() error {
		var doc models.Stylist
		err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			stylist = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to fetch stylist %s: %w", id, err)
		}
		stylist = &doc
		return nil
	})
	return stylist, err
}

func (r *MongoStylistRepo) GetByAccount(ctx context.Context, accountID string) (*models.Stylist, error) {
	var stylist *models.Stylist
	err := repository.RetryRead(ctx, func() error {
		var doc models.Stylist
		err := r.coll.FindOne(ctx, bson.M{"accountId": accountID}).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			stylist = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to fetch stylist for account %s: %w", accountID, err)
		}
		stylist = &doc
		return nil
	})
	return stylist, err
}

func (r *MongoStylistRepo) UpdatePricing(ctx context.Context, accountID string, prices models.PriceTable) error {
	update := bson.M{"$set": bson.M{"prices": prices, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"accountId": accountID}, update)
	if err != nil {
		return fmt.Errorf("failed to update pricing: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNoMatch
	}
	return nil
}

func (r *MongoStylistRepo) UpdateRating(ctx context.Context, stylistID string, rating float64, count int) error {
	update := bson.M{"$set": bson.M{"rating": rating, "reviewCount": count, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": stylistID}, update)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNoMatch
	}
	return nil
}

func (r *MongoStylistRepo) AddPortfolioImage(ctx context.Context, accountID, url string) error {
	update := bson.M{
		"$push": bson.M{"portfolio": url},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"accountId": accountID}, update)
	if err != nil {
		return fmt.Errorf("failed to add portfolio image: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNoMatch
	}
	return nil
}

func (r *MongoStylistRepo) SetStatus(ctx context.Context, accountID, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"accountId": accountID}, update)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNoMatch
	}
	return nil
}
