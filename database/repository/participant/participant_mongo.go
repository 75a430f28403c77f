package participantRepo

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

// MongoParticipantRepo implements ParticipantRepository using MongoDB.
type MongoParticipantRepo struct {
	coll *mongo.Collection
}

// NewMongoParticipantRepo creates a ParticipantRepository backed by the
// "participants" collection and ensures its indexes.
func NewMongoParticipantRepo() ParticipantRepository {
	repo := &MongoParticipantRepo{coll: database.Collection("participants")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("participant repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoParticipantRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	emailIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{idIdx, emailIdx})
	return err
}

func (r *MongoParticipantRepo) Create(participant *models.Participant) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, participant); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrExists
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func (r *MongoParticipantRepo) GetByID(id string) (*models.Participant, error) {
	return r.getOne(bson.M{"id": id})
}

func (r *MongoParticipantRepo) GetByEmail(email string) (*models.Participant, error) {
	return r.getOne(bson.M{"email": email})
}

func (r *MongoParticipantRepo) getOne(filter bson.M) (*models.Participant, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var participant models.Participant
	if err := r.coll.FindOne(ctx, filter).Decode(&participant); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch participant: %w", err)
	}
	return &participant, nil
}

func (r *MongoParticipantRepo) Trust(id string) (models.Trust, error) {
	participant, err := r.GetByID(id)
	if err != nil {
		return models.Trust{}, err
	}
	return participant.Trust, nil
}

func (r *MongoParticipantRepo) DeviceTokens(id string) ([]string, error) {
	participant, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	return participant.DeviceTokens, nil
}
