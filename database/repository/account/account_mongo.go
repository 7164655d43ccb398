package accountRepo

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

// MongoAccountRepo implements repository.AccountRepository backed by MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo returns a repo bound to the accounts collection.
func NewMongoAccountRepo() *MongoAccountRepo {
	r := &MongoAccountRepo{coll: database.DB().Collection("accounts")}
	if err := r.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("account repo: %v", err))
	}
	return r
}

func (r *MongoAccountRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAccountRepo) Create(ctx context.Context, account *models.Account) error {
	if _, err := r.coll.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *MongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var account *models.Account
	err := repository.RetryRead(ctx, func() error {
		var doc models.Account
		err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			account = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to fetch account %s: %w", id, err)
		}
		account = &doc
		return nil
	})
	return account, err
}

func (r *MongoAccountRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account *models.Account
	err := repository.RetryRead(ctx, func() error {
		var doc models.Account
		err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			account = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to fetch account by username: %w", err)
		}
		account = &doc
		return nil
	})
	return account, err
}

func (r *MongoAccountRepo) UpdateTokenHash(ctx context.Context, id, tokenHash string) error {
	update := bson.M{"$set": bson.M{"tokenHash": tokenHash, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update token hash: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNoMatch
	}
	return nil
}
