package profileRepo

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

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo creates a ProfileRepository backed by the "profiles"
// collection and ensures its indexes.
func NewMongoProfileRepo() ProfileRepository {
	repo := &MongoProfileRepo{coll: database.Collection("profiles")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("profile repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoProfileRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	// One profile per owner.
	ownerIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "ownerId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	// Discovery reads filter on enablement.
	enabledIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "isEnabled", Value: 1}, {Key: "vertical", Value: 1}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{ownerIdx, enabledIdx})
	return err
}

func (r *MongoProfileRepo) Create(profile *models.ProviderProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *MongoProfileRepo) GetByOwner(ownerID string) (*models.ProviderProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var profile models.ProviderProfile
	if err := r.coll.FindOne(ctx, bson.M{"ownerId": ownerID}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile for owner %s: %w", ownerID, err)
	}
	return &profile, nil
}

// UpdateDescriptor applies a partial update of capability fields only.
// Rolling stats are out of reach here.
func (r *MongoProfileRepo) UpdateDescriptor(ownerID string, patch models.ProfilePatch) (*models.ProviderProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.DisplayName != nil {
		set["descriptor.displayName"] = *patch.DisplayName
	}
	if patch.Bio != nil {
		set["descriptor.bio"] = *patch.Bio
	}
	if patch.ServiceCategories != nil {
		set["descriptor.serviceCategories"] = patch.ServiceCategories
	}
	if patch.Languages != nil {
		set["descriptor.languages"] = patch.Languages
	}
	if patch.MaxPartySize != nil {
		set["descriptor.maxPartySize"] = *patch.MaxPartySize
	}
	if patch.City != nil {
		set["descriptor.city"] = *patch.City
	}
	if patch.Address != nil {
		set["descriptor.address"] = *patch.Address
	}
	if patch.LocationGeo != nil {
		set["descriptor.locationGeo"] = patch.LocationGeo
	}
	if patch.PaymentOffers != nil {
		set["descriptor.paymentOffers"] = patch.PaymentOffers
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.ProviderProfile
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"ownerId": ownerID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile for owner %s: %w", ownerID, err)
	}
	return &updated, nil
}

func (r *MongoProfileRepo) SetEnabled(ownerID string, enabled bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"isEnabled": enabled, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"ownerId": ownerID}, update)
	if err != nil {
		return fmt.Errorf("failed to set enabled=%v for owner %s: %w", enabled, ownerID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProfileRepo) UpdateResponseStats(ownerID string, stats models.ResponseStats) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"stats.responseRate":            stats.ResponseRate,
		"stats.avgResponseLatencyHours": stats.AvgResponseLatencyHours,
		"stats.completedEngagements":    stats.CompletedEngagements,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"ownerId": ownerID}, update)
	if err != nil {
		return fmt.Errorf("failed to update response stats for owner %s: %w", ownerID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProfileRepo) UpdateRating(ownerID string, rating float64, reviewCount int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"stats.rating":      rating,
		"stats.reviewCount": reviewCount,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"ownerId": ownerID}, update)
	if err != nil {
		return fmt.Errorf("failed to update rating for owner %s: %w", ownerID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProfileRepo) Delete(ownerID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return fmt.Errorf("failed to delete profile for owner %s: %w", ownerID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
