package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a BookingRepository backed by the "bookings"
// collection and ensures its indexes.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("booking repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	// Overlap queries scan a provider's bookings ordered by window.
	windowIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "providerId", Value: 1},
			{Key: "status", Value: 1},
			{Key: "windowStart", Value: 1},
		},
	}
	requesterIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "requesterId", Value: 1}, {Key: "requestedAt", Value: -1}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{idIdx, windowIdx, requesterIdx})
	return err
}

func (r *MongoBookingRepo) Insert(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// blockingFilter selects bookings that reserve the provider's window:
// the half-open overlap test, existing.start < end && existing.end > start.
func blockingFilter(providerID string, start, end time.Time, excludeID string) bson.M {
	filter := bson.M{
		"providerId":  providerID,
		"status":      bson.M{"$in": models.BlockingStatuses},
		"windowStart": bson.M{"$lt": end},
		"windowEnd":   bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

func (r *MongoBookingRepo) FindBlocking(providerID string, start, end time.Time, excludeID string) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.findBlocking(ctx, providerID, start, end, excludeID)
}

func (r *MongoBookingRepo) findBlocking(ctx context.Context, providerID string, start, end time.Time, excludeID string) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, blockingFilter(providerID, start, end, excludeID))
	if err != nil {
		return nil, fmt.Errorf("failed to query blocking bookings for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode blocking bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListByProvider(providerID string) ([]models.Booking, error) {
	return r.list(bson.M{"providerId": providerID})
}

func (r *MongoBookingRepo) ListByRequester(requesterID string) ([]models.Booking, error) {
	return r.list(bson.M{"requesterId": requesterID})
}

func (r *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "requestedAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) HasNonTerminal(providerID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	terminal := []models.BookingStatus{
		models.StatusCompleted, models.StatusRejected,
		models.StatusCanceledByProvider, models.StatusCanceledByRequester,
	}
	filter := bson.M{"providerId": providerID, "status": bson.M{"$nin": terminal}}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count non-terminal bookings for provider %s: %w", providerID, err)
	}
	return n > 0, nil
}
