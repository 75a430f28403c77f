package reviewRepo

import (
	"errors"

	"wayfare/models"
)

// ErrDuplicate is returned when (bookingId, reviewerId) already has a review.
var ErrDuplicate = errors.New("review already exists for booking and reviewer")

// ReviewRepository persists reviews. Uniqueness of (booking, reviewer) is
// enforced by an index, not by the caller.
type ReviewRepository interface {
	Insert(review *models.Review) error
	ListPublicByReviewee(revieweeID string) ([]models.Review, error)
	ListByReviewee(revieweeID string) ([]models.Review, error)
}
