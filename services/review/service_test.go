package review_test

import (
	"testing"
	"time"

	"wayfare/database/repository/memory"
	"wayfare/models"
	"wayfare/services/review"
	"wayfare/services/svcerr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	providerID  = "prov-1"
	requesterID = "req-1"
)

func newReviewService(t *testing.T) (*review.DefaultReviewService, *memory.BookingRepo, *memory.ProfileRepo) {
	t.Helper()
	bookings := memory.NewBookingRepo()
	profiles := memory.NewProfileRepo()
	reviews := memory.NewReviewRepo()
	require.NoError(t, profiles.Create(&models.ProviderProfile{
		ID:       "profile-1",
		OwnerID:  providerID,
		Vertical: models.VerticalTour,
	}))
	svc := &review.DefaultReviewService{
		Reviews:  reviews,
		Bookings: bookings,
		Profiles: profiles,
	}
	return svc, bookings, profiles
}

// seedCompleted stores a COMPLETED booking between the provider and the
// given requester and returns its id.
func seedCompleted(repo *memory.BookingRepo, requester string) string {
	now := time.Now().UTC()
	done := now.Add(-time.Hour)
	b := models.Booking{
		ID:          uuid.New().String(),
		Vertical:    models.VerticalTour,
		ProviderID:  providerID,
		RequesterID: requester,
		WindowStart: now.Add(-26 * time.Hour),
		WindowEnd:   now.Add(-23 * time.Hour),
		PartySize:   2,
		Status:      models.StatusCompleted,
		RequestedAt: now.Add(-72 * time.Hour),
		CompletedAt: &done,
	}
	repo.Seed(b)
	return b.ID
}

// TestSubmitReview_success verifies a public review lands on the provider's
// rating immediately.
func TestSubmitReview_success(t *testing.T) {
	svc, bookings, profiles := newReviewService(t)
	bookingID := seedCompleted(bookings, requesterID)

	rev, err := svc.SubmitReview(bookingID, requesterID, models.ReviewInput{
		Rating:   4,
		Comment:  "great walk through Alfama",
		IsPublic: true,
	})
	require.NoError(t, err)
	require.Equal(t, providerID, rev.RevieweeID)
	require.Equal(t, requesterID, rev.ReviewerID)

	p, err := profiles.GetByOwner(providerID)
	require.NoError(t, err)
	require.InDelta(t, 4.0, p.Stats.Rating, 0.001)
	require.Equal(t, 1, p.Stats.ReviewCount)
}

// TestSubmitReview_duplicate verifies the second review from the same
// reviewer on one booking is rejected and the rating is unchanged.
func TestSubmitReview_duplicate(t *testing.T) {
	svc, bookings, profiles := newReviewService(t)
	bookingID := seedCompleted(bookings, requesterID)

	_, err := svc.SubmitReview(bookingID, requesterID, models.ReviewInput{Rating: 4, IsPublic: true})
	require.NoError(t, err)

	_, err = svc.SubmitReview(bookingID, requesterID, models.ReviewInput{Rating: 1, IsPublic: true})
	require.Equal(t, svcerr.CodeDuplicateReview, svcerr.CodeOf(err))

	p, err := profiles.GetByOwner(providerID)
	require.NoError(t, err)
	require.InDelta(t, 4.0, p.Stats.Rating, 0.001)
	require.Equal(t, 1, p.Stats.ReviewCount)
}

// TestSubmitReview_bothPartiesMayReview verifies the provider can review
// the requester on the same booking without tripping the duplicate check.
func TestSubmitReview_bothPartiesMayReview(t *testing.T) {
	svc, bookings, _ := newReviewService(t)
	bookingID := seedCompleted(bookings, requesterID)

	_, err := svc.SubmitReview(bookingID, requesterID, models.ReviewInput{Rating: 5, IsPublic: true})
	require.NoError(t, err)

	rev, err := svc.SubmitReview(bookingID, providerID, models.ReviewInput{Rating: 5, IsPublic: true})
	require.NoError(t, err)
	require.Equal(t, requesterID, rev.RevieweeID)
}

// TestSubmitReview_notCompleted verifies only COMPLETED bookings are
// reviewable.
func TestSubmitReview_notCompleted(t *testing.T) {
	svc, bookings, _ := newReviewService(t)
	now := time.Now().UTC()
	bookings.Seed(models.Booking{
		ID:          "b-approved",
		ProviderID:  providerID,
		RequesterID: requesterID,
		WindowStart: now.Add(24 * time.Hour),
		WindowEnd:   now.Add(27 * time.Hour),
		Status:      models.StatusApproved,
		RequestedAt: now,
	})

	_, err := svc.SubmitReview("b-approved", requesterID, models.ReviewInput{Rating: 4, IsPublic: true})
	require.Equal(t, svcerr.CodeNotEligible, svcerr.CodeOf(err))
}

// TestSubmitReview_nonParty verifies outsiders cannot review a booking.
func TestSubmitReview_nonParty(t *testing.T) {
	svc, bookings, _ := newReviewService(t)
	bookingID := seedCompleted(bookings, requesterID)

	_, err := svc.SubmitReview(bookingID, "stranger", models.ReviewInput{Rating: 5, IsPublic: true})
	require.Equal(t, svcerr.CodeNotEligible, svcerr.CodeOf(err))
}

// TestSubmitReview_ratingBounds verifies out-of-range ratings are rejected
// before any lookup.
func TestSubmitReview_ratingBounds(t *testing.T) {
	svc, bookings, _ := newReviewService(t)
	bookingID := seedCompleted(bookings, requesterID)

	_, err := svc.SubmitReview(bookingID, requesterID, models.ReviewInput{Rating: 0})
	require.Equal(t, svcerr.CodeValidation, svcerr.CodeOf(err))

	_, err = svc.SubmitReview(bookingID, requesterID, models.ReviewInput{Rating: 6})
	require.Equal(t, svcerr.CodeValidation, svcerr.CodeOf(err))
}

// TestSubmitReview_unknownBooking verifies reviewing a missing booking
// reports NOT_FOUND.
func TestSubmitReview_unknownBooking(t *testing.T) {
	svc, _, _ := newReviewService(t)

	_, err := svc.SubmitReview("no-such-booking", requesterID, models.ReviewInput{Rating: 3})
	require.Equal(t, svcerr.CodeNotFound, svcerr.CodeOf(err))
}

// TestSubmitReview_privateExcludedFromRating verifies private reviews are
// stored but never feed the published rating.
func TestSubmitReview_privateExcludedFromRating(t *testing.T) {
	svc, bookings, profiles := newReviewService(t)
	first := seedCompleted(bookings, "req-a")
	second := seedCompleted(bookings, "req-b")

	_, err := svc.SubmitReview(first, "req-a", models.ReviewInput{Rating: 4, IsPublic: true})
	require.NoError(t, err)
	_, err = svc.SubmitReview(second, "req-b", models.ReviewInput{Rating: 1, IsPublic: false})
	require.NoError(t, err)

	p, err := profiles.GetByOwner(providerID)
	require.NoError(t, err)
	require.InDelta(t, 4.0, p.Stats.Rating, 0.001)
	require.Equal(t, 1, p.Stats.ReviewCount)

	public, err := svc.ListForProvider(providerID)
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.Equal(t, 4, public[0].Rating)
}

// TestSubmitReview_requesterRevieweeNoProfile verifies reviewing a plain
// requester works even though they carry no provider profile.
func TestSubmitReview_requesterRevieweeNoProfile(t *testing.T) {
	svc, bookings, _ := newReviewService(t)
	bookingID := seedCompleted(bookings, requesterID)

	rev, err := svc.SubmitReview(bookingID, providerID, models.ReviewInput{Rating: 5, IsPublic: true})
	require.NoError(t, err)
	require.Equal(t, requesterID, rev.RevieweeID)
}

// TestRecomputeRating_meanOfPublics verifies the rating is the plain mean
// of all public reviews.
func TestRecomputeRating_meanOfPublics(t *testing.T) {
	svc, bookings, profiles := newReviewService(t)

	ratings := []int{5, 4, 3}
	for i, r := range ratings {
		requester := string(rune('a' + i))
		bookingID := seedCompleted(bookings, requester)
		_, err := svc.SubmitReview(bookingID, requester, models.ReviewInput{Rating: r, IsPublic: true})
		require.NoError(t, err)
	}

	p, err := profiles.GetByOwner(providerID)
	require.NoError(t, err)
	require.InDelta(t, 4.0, p.Stats.Rating, 0.001)
	require.Equal(t, 3, p.Stats.ReviewCount)
}
