package bookingRepo

import (
	"fmt"
	"time"

	"wayfare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// changeFilter guards a transition: the booking must sit in one of the
// source states, and every write-once timestamp the change would set must
// still be unset. respondedAt is exempt: it is recorded on the first
// response only and silently preserved on later ones.
func changeFilter(id string, change models.StateChange) bson.M {
	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": change.From},
	}
	if change.StartedAt != nil {
		filter["startedAt"] = nil
	}
	if change.CompletedAt != nil {
		filter["completedAt"] = nil
	}
	if change.CancelledAt != nil {
		filter["cancelledAt"] = nil
	}
	return filter
}

// changeUpdate builds a pipeline update so the status write, its timestamp
// and the keep-first-response rule land in one document write.
func changeUpdate(change models.StateChange) mongo.Pipeline {
	set := bson.D{{Key: "status", Value: change.To}}
	if change.RespondedAt != nil {
		set = append(set, bson.E{Key: "respondedAt", Value: bson.M{
			"$ifNull": bson.A{"$respondedAt", change.RespondedAt},
		}})
	}
	if change.StartedAt != nil {
		set = append(set, bson.E{Key: "startedAt", Value: change.StartedAt})
	}
	if change.CompletedAt != nil {
		set = append(set, bson.E{Key: "completedAt", Value: change.CompletedAt})
	}
	if change.CancelledAt != nil {
		set = append(set, bson.E{Key: "cancelledAt", Value: change.CancelledAt})
	}
	if change.CancelReason != "" {
		set = append(set, bson.E{Key: "cancelReason", Value: change.CancelReason})
	}
	if change.CanceledBy != "" {
		set = append(set, bson.E{Key: "canceledBy", Value: change.CanceledBy})
	}
	return mongo.Pipeline{bson.D{{Key: "$set", Value: set}}}
}

// Transition applies the change with its guards in a single conditional
// update. A guard that fails leaves the stored booking untouched.
func (r *MongoBookingRepo) Transition(id string, change models.StateChange) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := r.coll.FindOneAndUpdate(ctx, changeFilter(id, change), changeUpdate(change), opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to apply %s to booking %s: %w", change.Event, id, err)
	}

	// Distinguish a missing booking from a guard failure.
	if _, getErr := r.GetByID(id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrStateMismatch
}
