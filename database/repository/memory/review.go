package memory

import (
	"sort"
	"sync"

	reviewRepo "wayfare/database/repository/review"
	"wayfare/models"
)

// ReviewRepo is the in-memory ReviewRepository.
type ReviewRepo struct {
	mu      sync.Mutex
	reviews []models.Review
}

// NewReviewRepo creates an empty in-memory review store.
func NewReviewRepo() *ReviewRepo {
	return &ReviewRepo{}
}

func (r *ReviewRepo) Insert(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reviews {
		if r.reviews[i].BookingID == review.BookingID && r.reviews[i].ReviewerID == review.ReviewerID {
			return reviewRepo.ErrDuplicate
		}
	}
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *ReviewRepo) ListPublicByReviewee(revieweeID string) ([]models.Review, error) {
	return r.list(revieweeID, true)
}

func (r *ReviewRepo) ListByReviewee(revieweeID string) ([]models.Review, error) {
	return r.list(revieweeID, false)
}

func (r *ReviewRepo) list(revieweeID string, publicOnly bool) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for i := range r.reviews {
		rev := r.reviews[i]
		if rev.RevieweeID != revieweeID {
			continue
		}
		if publicOnly && !rev.IsPublic {
			continue
		}
		out = append(out, rev)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
