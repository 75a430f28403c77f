package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"wayfare/database"
	"wayfare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a ReviewRepository backed by the "reviews"
// collection and ensures its indexes.
func NewMongoReviewRepo() ReviewRepository {
	repo := &MongoReviewRepo{coll: database.Collection("reviews")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("review repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pairIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "bookingId", Value: 1}, {Key: "reviewerId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	revieweeIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "revieweeId", Value: 1}, {Key: "isPublic", Value: 1}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{pairIdx, revieweeIdx})
	return err
}

func (r *MongoReviewRepo) Insert(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) ListPublicByReviewee(revieweeID string) ([]models.Review, error) {
	return r.list(bson.M{"revieweeId": revieweeID, "isPublic": true})
}

func (r *MongoReviewRepo) ListByReviewee(revieweeID string) ([]models.Review, error) {
	return r.list(bson.M{"revieweeId": revieweeID})
}

func (r *MongoReviewRepo) list(filter bson.M) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
