package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"wayfare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Approve flips a booking to APPROVED inside one mongo transaction. The
// conflict re-check and the conditional status write share the session, so
// two concurrent approvals for overlapping windows cannot both pass the
// check and both commit.
func (r *MongoBookingRepo) Approve(ctx context.Context, id string, terms *models.AgreedTerms, now time.Time) (*models.Booking, error) {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var approved models.Booking

	txnFn := func(sc mongo.SessionContext) error {
		var current models.Booking
		if err := r.coll.FindOne(sc, bson.M{"id": id}).Decode(&current); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load booking %s: %w", id, err)
		}
		if current.Status != models.StatusPending && current.Status != models.StatusDiscussing {
			return ErrStateMismatch
		}

		// Re-check: an approved/active/discussing booking overlapping this
		// window blocks approval.
		blocking, err := r.findBlocking(sc, current.ProviderID, current.WindowStart, current.WindowEnd, id)
		if err != nil {
			return err
		}
		if len(blocking) > 0 {
			return ErrWindowConflict
		}

		set := bson.D{
			{Key: "status", Value: models.StatusApproved},
			{Key: "approvedAt", Value: now},
			{Key: "respondedAt", Value: bson.M{"$ifNull": bson.A{"$respondedAt", now}}},
		}
		if terms != nil {
			set = append(set, bson.E{Key: "agreedTerms", Value: terms})
		}
		filter := bson.M{
			"id":         id,
			"status":     bson.M{"$in": []models.BookingStatus{models.StatusPending, models.StatusDiscussing}},
			"approvedAt": nil,
		}
		res, err := r.coll.UpdateOne(sc, filter, mongo.Pipeline{bson.D{{Key: "$set", Value: set}}})
		if err != nil {
			return fmt.Errorf("failed to approve booking %s: %w", id, err)
		}
		if res.MatchedCount == 0 {
			return ErrStateMismatch
		}

		if err := r.coll.FindOne(sc, bson.M{"id": id}).Decode(&approved); err != nil {
			return fmt.Errorf("failed to reload approved booking %s: %w", id, err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return nil, err
	}

	return &approved, nil
}
