// Package review attaches reviews to completed bookings and keeps the
// reviewee's rating a pure function of their public reviews.
package review

import (
	"context"
	"time"

	bookingRepo "wayfare/database/repository/booking"
	profileRepo "wayfare/database/repository/profile"
	reviewRepo "wayfare/database/repository/review"
	"wayfare/models"
	"wayfare/services/notification"
	"wayfare/services/profile"
	"wayfare/services/svcerr"
	"wayfare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService accepts reviews and recomputes ratings.
type ReviewService interface {
	SubmitReview(bookingID, reviewerID string, input models.ReviewInput) (*models.Review, error)
	ListForProvider(providerID string) ([]models.Review, error)
	RecomputeRating(providerID string) error
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Reviews      reviewRepo.ReviewRepository
	Bookings     bookingRepo.BookingRepository
	Profiles     profileRepo.ProfileRepository
	ProfileCache *profile.Cache
	Notifier     notification.Dispatcher
}

// SubmitReview attaches one review per (booking, reviewer) to a COMPLETED
// booking. The reviewee is the other party.
func (s *DefaultReviewService) SubmitReview(bookingID, reviewerID string, input models.ReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, svcerr.Validation("rating must be between 1 and 5")
	}

	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		if err == bookingRepo.ErrNotFound {
			return nil, svcerr.NotFound("booking %s not found", bookingID)
		}
		return nil, err
	}
	if !booking.IsParty(reviewerID) {
		return nil, svcerr.NotEligible("only a party to the booking may review it")
	}
	if booking.Status != models.StatusCompleted {
		return nil, svcerr.NotEligible("booking must be completed before it can be reviewed")
	}

	revieweeID := booking.ProviderID
	if reviewerID == booking.ProviderID {
		revieweeID = booking.RequesterID
	}

	rev := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  bookingID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     input.Rating,
		SubScores:  input.SubScores,
		Comment:    input.Comment,
		IsPublic:   input.IsPublic,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Reviews.Insert(rev); err != nil {
		if err == reviewRepo.ErrDuplicate {
			return nil, svcerr.DuplicateReview("you have already reviewed booking %s", bookingID)
		}
		return nil, err
	}

	// Only providers carry a published rating; a review of the requester
	// is stored but aggregates nowhere.
	if revieweeID == booking.ProviderID {
		if err := s.RecomputeRating(revieweeID); err != nil {
			utils.GetLogger().Error("failed to recompute rating",
				zap.String("providerID", revieweeID), zap.Error(err))
		}
	}

	s.notifyReviewee(revieweeID, rev)
	return rev, nil
}

// RecomputeRating rebuilds the provider's rating as the arithmetic mean of
// all public reviews, and reviewCount as their count. Full recompute every
// time; incremental patches drift.
func (s *DefaultReviewService) RecomputeRating(providerID string) error {
	reviews, err := s.Reviews.ListPublicByReviewee(providerID)
	if err != nil {
		return err
	}

	var rating float64
	if len(reviews) > 0 {
		var sum int
		for i := range reviews {
			sum += reviews[i].Rating
		}
		rating = float64(sum) / float64(len(reviews))
	}

	if err := s.Profiles.UpdateRating(providerID, rating, len(reviews)); err != nil {
		if err == profileRepo.ErrNotFound {
			// Reviewee has no provider profile; nothing to publish onto.
			return nil
		}
		return err
	}
	s.ProfileCache.Invalidate(providerID)
	return nil
}

func (s *DefaultReviewService) ListForProvider(providerID string) ([]models.Review, error) {
	return s.Reviews.ListPublicByReviewee(providerID)
}

func (s *DefaultReviewService) notifyReviewee(revieweeID string, rev *models.Review) {
	if s.Notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload := map[string]string{"bookingId": rev.BookingID, "reviewId": rev.ID}
	if err := s.Notifier.Notify(ctx, revieweeID, models.EventReviewReceived, payload); err != nil {
		utils.GetLogger().Warn("failed to dispatch review notification",
			zap.String("userID", revieweeID), zap.Error(err))
	}
}
