package booking_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"wayfare/database/repository/memory"
	"wayfare/models"
	"wayfare/services/booking"
	"wayfare/services/stats"
	"wayfare/services/svcerr"

	"github.com/stretchr/testify/require"
)

const (
	providerID  = "prov-1"
	requesterID = "req-1"
)

func newTestEnv(t *testing.T) (*booking.DefaultBookingService, *memory.BookingRepo, *memory.ProfileRepo) {
	t.Helper()
	bookings := memory.NewBookingRepo()
	profiles := memory.NewProfileRepo()
	require.NoError(t, profiles.Create(&models.ProviderProfile{
		ID:        "profile-1",
		OwnerID:   providerID,
		Vertical:  models.VerticalTour,
		IsEnabled: true,
		Descriptor: models.ServiceDescriptor{
			DisplayName:  "Lisbon Old Town Walks",
			MaxPartySize: 4,
		},
	}))

	agg := &stats.DefaultAggregator{Bookings: bookings, Profiles: profiles}
	svc := booking.NewDefaultBookingService(bookings, profiles, agg, nil, nil)
	return svc, bookings, profiles
}

// window returns a future [start, start+hours) pair offset by day.
func window(day, hours int) (time.Time, time.Time) {
	start := time.Now().UTC().Add(time.Duration(day) * 24 * time.Hour).Truncate(time.Hour)
	return start, start.Add(time.Duration(hours) * time.Hour)
}

func request(t *testing.T, svc *booking.DefaultBookingService, requester string, start, end time.Time) *models.Booking {
	t.Helper()
	b, err := svc.RequestBooking(models.BookingRequest{
		ProviderID:  providerID,
		RequesterID: requester,
		WindowStart: start,
		WindowEnd:   end,
		PartySize:   2,
	})
	require.NoError(t, err)
	return b
}

// TestRequestBooking_createsPending verifies a fresh request lands in
// PENDING with its requestedAt recorded and no response timestamps yet.
func TestRequestBooking_createsPending(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)

	b := request(t, svc, requesterID, start, end)

	require.Equal(t, models.StatusPending, b.Status)
	require.Equal(t, providerID, b.ProviderID)
	require.Equal(t, requesterID, b.RequesterID)
	require.Equal(t, models.VerticalTour, b.Vertical)
	require.False(t, b.RequestedAt.IsZero())
	require.Nil(t, b.RespondedAt)
	require.Nil(t, b.ApprovedAt)
}

// TestRequestBooking_selfBooking verifies a provider cannot book themselves.
func TestRequestBooking_selfBooking(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)

	_, err := svc.RequestBooking(models.BookingRequest{
		ProviderID:  providerID,
		RequesterID: providerID,
		WindowStart: start,
		WindowEnd:   end,
		PartySize:   1,
	})
	require.Equal(t, svcerr.CodeValidation, svcerr.CodeOf(err))
}

// TestRequestBooking_windowValidation covers inverted and past windows.
func TestRequestBooking_windowValidation(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)

	_, err := svc.RequestBooking(models.BookingRequest{
		ProviderID:  providerID,
		RequesterID: requesterID,
		WindowStart: end,
		WindowEnd:   start,
		PartySize:   1,
	})
	require.Equal(t, svcerr.CodeValidation, svcerr.CodeOf(err))

	past := time.Now().UTC().Add(-24 * time.Hour)
	_, err = svc.RequestBooking(models.BookingRequest{
		ProviderID:  providerID,
		RequesterID: requesterID,
		WindowStart: past,
		WindowEnd:   past.Add(2 * time.Hour),
		PartySize:   1,
	})
	require.Equal(t, svcerr.CodeValidation, svcerr.CodeOf(err))
}

// TestRequestBooking_partySizeCap verifies the capacity check uses the
// provider's descriptor and the vertical's own terminology.
func TestRequestBooking_partySizeCap(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)

	_, err := svc.RequestBooking(models.BookingRequest{
		ProviderID:  providerID,
		RequesterID: requesterID,
		WindowStart: start,
		WindowEnd:   end,
		PartySize:   5,
	})
	require.Equal(t, svcerr.CodeValidation, svcerr.CodeOf(err))
	require.Contains(t, err.Error(), "party size")
}

// TestRequestBooking_disabledProfile verifies a disabled provider cannot
// receive requests.
func TestRequestBooking_disabledProfile(t *testing.T) {
	svc, _, profiles := newTestEnv(t)
	require.NoError(t, profiles.SetEnabled(providerID, false))
	start, end := window(1, 3)

	_, err := svc.RequestBooking(models.BookingRequest{
		ProviderID:  providerID,
		RequesterID: requesterID,
		WindowStart: start,
		WindowEnd:   end,
		PartySize:   1,
	})
	require.Equal(t, svcerr.CodeNotEligible, svcerr.CodeOf(err))
}

// TestRequestBooking_unknownProvider verifies a request against a missing
// profile reports NOT_FOUND.
func TestRequestBooking_unknownProvider(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)

	_, err := svc.RequestBooking(models.BookingRequest{
		ProviderID:  "nobody",
		RequesterID: requesterID,
		WindowStart: start,
		WindowEnd:   end,
		PartySize:   1,
	})
	require.Equal(t, svcerr.CodeNotFound, svcerr.CodeOf(err))
}

// TestRespond_approve verifies approval records terms, respondedAt and
// approvedAt together.
func TestRespond_approve(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	terms := &models.AgreedTerms{PaymentMethod: "cash", Amount: 80, Currency: "EUR"}
	updated, err := svc.RespondToBooking(b.ID, providerID, models.DecisionApprove, terms)
	require.NoError(t, err)

	require.Equal(t, models.StatusApproved, updated.Status)
	require.NotNil(t, updated.RespondedAt)
	require.NotNil(t, updated.ApprovedAt)
	require.NotNil(t, updated.AgreedTerms)
	require.Equal(t, "cash", updated.AgreedTerms.PaymentMethod)
	require.InDelta(t, 80, updated.AgreedTerms.Amount, 0.001)
}

// TestRespond_reject verifies rejection is terminal and records respondedAt.
func TestRespond_reject(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	updated, err := svc.RespondToBooking(b.ID, providerID, models.DecisionReject, nil)
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, updated.Status)
	require.NotNil(t, updated.RespondedAt)
	require.True(t, updated.Status.Terminal())
}

// TestRespond_secondResponse verifies a provider cannot answer twice.
func TestRespond_secondResponse(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	_, err := svc.RespondToBooking(b.ID, providerID, models.DecisionApprove, nil)
	require.NoError(t, err)

	_, err = svc.RespondToBooking(b.ID, providerID, models.DecisionReject, nil)
	require.Equal(t, svcerr.CodeInvalidState, svcerr.CodeOf(err))
}

// TestRespond_nonProvider verifies the requester cannot answer their own
// request and an outsider cannot see the booking at all.
func TestRespond_nonProvider(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	_, err := svc.RespondToBooking(b.ID, requesterID, models.DecisionApprove, nil)
	require.Equal(t, svcerr.CodeUnauthorized, svcerr.CodeOf(err))

	_, err = svc.RespondToBooking(b.ID, "stranger", models.DecisionApprove, nil)
	require.Equal(t, svcerr.CodeUnauthorized, svcerr.CodeOf(err))
}

// TestRespond_unknownDecision verifies an unrecognized decision string is a
// validation error.
func TestRespond_unknownDecision(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	_, err := svc.RespondToBooking(b.ID, providerID, models.Decision("maybe"), nil)
	require.Equal(t, svcerr.CodeValidation, svcerr.CodeOf(err))
}

// TestRespond_approveConflict verifies two pending requests can stack on
// one window but only the first approval wins; a request for a free window
// stays approvable.
func TestRespond_approveConflict(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)

	first := request(t, svc, "req-a", start, end)
	second := request(t, svc, "req-b", start, end)
	elsewhere := request(t, svc, "req-c", end.Add(time.Hour), end.Add(3*time.Hour))

	_, err := svc.RespondToBooking(first.ID, providerID, models.DecisionApprove, nil)
	require.NoError(t, err)

	_, err = svc.RespondToBooking(second.ID, providerID, models.DecisionApprove, nil)
	require.Equal(t, svcerr.CodeConflict, svcerr.CodeOf(err))

	// The loser is still PENDING, not consumed by the failed approval.
	got, err := svc.GetBooking(second.ID, "req-b")
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, got.Status)

	_, err = svc.RespondToBooking(elsewhere.ID, providerID, models.DecisionApprove, nil)
	require.NoError(t, err)
}

// TestRespond_discussHoldsWindow verifies DISCUSSING blocks the window like
// an approval, and that approving from DISCUSSING keeps the original
// respondedAt.
func TestRespond_discussHoldsWindow(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	discussing, err := svc.RespondToBooking(b.ID, providerID, models.DecisionDiscuss, nil)
	require.NoError(t, err)
	require.Equal(t, models.StatusDiscussing, discussing.Status)
	require.NotNil(t, discussing.RespondedAt)
	firstResponse := *discussing.RespondedAt

	avail, err := svc.CheckAvailability(providerID, start, end)
	require.NoError(t, err)
	require.False(t, avail.Available)

	rival := request(t, svc, "req-b", start, end)
	_, err = svc.RespondToBooking(rival.ID, providerID, models.DecisionApprove, nil)
	require.Equal(t, svcerr.CodeConflict, svcerr.CodeOf(err))

	time.Sleep(5 * time.Millisecond)
	approved, err := svc.RespondToBooking(b.ID, providerID, models.DecisionApprove, nil)
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, approved.Status)
	require.True(t, approved.RespondedAt.Equal(firstResponse))
}

// TestRespond_discussOnlyFromPending verifies DISCUSSING can only be entered
// from PENDING.
func TestRespond_discussOnlyFromPending(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	_, err := svc.RespondToBooking(b.ID, providerID, models.DecisionApprove, nil)
	require.NoError(t, err)

	_, err = svc.RespondToBooking(b.ID, providerID, models.DecisionDiscuss, nil)
	require.Equal(t, svcerr.CodeInvalidState, svcerr.CodeOf(err))
}

// TestCancel_byEachParty verifies the terminal status records which side
// canceled.
func TestCancel_byEachParty(t *testing.T) {
	svc, _, _ := newTestEnv(t)

	s1, e1 := window(1, 3)
	byRequester := request(t, svc, requesterID, s1, e1)
	updated, err := svc.CancelBooking(byRequester.ID, requesterID, "plans changed")
	require.NoError(t, err)
	require.Equal(t, models.StatusCanceledByRequester, updated.Status)
	require.Equal(t, requesterID, updated.CanceledBy)
	require.Equal(t, "plans changed", updated.CancelReason)
	require.NotNil(t, updated.CancelledAt)

	s2, e2 := window(2, 3)
	byProvider := request(t, svc, requesterID, s2, e2)
	updated, err = svc.CancelBooking(byProvider.ID, providerID, "")
	require.NoError(t, err)
	require.Equal(t, models.StatusCanceledByProvider, updated.Status)
	require.Equal(t, providerID, updated.CanceledBy)
}

// TestCancel_secondCancelFails verifies cancel-of-canceled reports
// INVALID_STATE and leaves the stored timestamp untouched.
func TestCancel_secondCancelFails(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	_, err := svc.RespondToBooking(b.ID, providerID, models.DecisionApprove, nil)
	require.NoError(t, err)

	first, err := svc.CancelBooking(b.ID, requesterID, "changed my mind")
	require.NoError(t, err)

	_, err = svc.CancelBooking(b.ID, providerID, "too late")
	require.Equal(t, svcerr.CodeInvalidState, svcerr.CodeOf(err))

	got, err := svc.GetBooking(b.ID, requesterID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCanceledByRequester, got.Status)
	require.True(t, got.CancelledAt.Equal(*first.CancelledAt))
	require.Equal(t, "changed my mind", got.CancelReason)
}

// TestCancel_nonParty verifies outsiders cannot cancel.
func TestCancel_nonParty(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	_, err := svc.CancelBooking(b.ID, "stranger", "")
	require.Equal(t, svcerr.CodeUnauthorized, svcerr.CodeOf(err))
}

// TestCancel_inProgressBlocked verifies a running engagement cannot be
// canceled, only completed.
func TestCancel_inProgressBlocked(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	_, err := svc.RespondToBooking(b.ID, providerID, models.DecisionApprove, nil)
	require.NoError(t, err)
	_, err = svc.StartEngagement(b.ID, providerID)
	require.NoError(t, err)

	_, err = svc.CancelBooking(b.ID, requesterID, "")
	require.Equal(t, svcerr.CodeInvalidState, svcerr.CodeOf(err))
}

// TestStartComplete_flow walks approve, start, complete and checks each
// timestamp lands exactly once.
func TestStartComplete_flow(t *testing.T) {
	svc, _, profiles := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	_, err := svc.RespondToBooking(b.ID, providerID, models.DecisionApprove, nil)
	require.NoError(t, err)

	started, err := svc.StartEngagement(b.ID, providerID)
	require.NoError(t, err)
	require.Equal(t, models.StatusInProgress, started.Status)
	require.NotNil(t, started.StartedAt)

	completed, err := svc.CompleteEngagement(b.ID, providerID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	// The inline recompute counted the completed engagement.
	p, err := profiles.GetByOwner(providerID)
	require.NoError(t, err)
	require.Equal(t, 1, p.Stats.CompletedEngagements)
}

// TestStart_requiresApproved verifies starting from PENDING fails.
func TestStart_requiresApproved(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	_, err := svc.StartEngagement(b.ID, providerID)
	require.Equal(t, svcerr.CodeInvalidState, svcerr.CodeOf(err))
}

// TestComplete_requiresInProgress verifies completing an approved but
// unstarted booking fails.
func TestComplete_requiresInProgress(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	_, err := svc.RespondToBooking(b.ID, providerID, models.DecisionApprove, nil)
	require.NoError(t, err)

	_, err = svc.CompleteEngagement(b.ID, providerID)
	require.Equal(t, svcerr.CodeInvalidState, svcerr.CodeOf(err))
}

// TestStartComplete_providerOnly verifies session transitions belong to the
// provider.
func TestStartComplete_providerOnly(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	_, err := svc.RespondToBooking(b.ID, providerID, models.DecisionApprove, nil)
	require.NoError(t, err)

	_, err = svc.StartEngagement(b.ID, requesterID)
	require.Equal(t, svcerr.CodeUnauthorized, svcerr.CodeOf(err))
}

// TestGetBooking_partyOnly verifies bookings are visible to their two
// parties and nobody else.
func TestGetBooking_partyOnly(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)
	b := request(t, svc, requesterID, start, end)

	_, err := svc.GetBooking(b.ID, requesterID)
	require.NoError(t, err)
	_, err = svc.GetBooking(b.ID, providerID)
	require.NoError(t, err)

	_, err = svc.GetBooking(b.ID, "stranger")
	require.Equal(t, svcerr.CodeUnauthorized, svcerr.CodeOf(err))

	_, err = svc.GetBooking("no-such-id", requesterID)
	require.Equal(t, svcerr.CodeNotFound, svcerr.CodeOf(err))
}

// TestConcurrentApprovals races N approvals for the same window and
// requires exactly one winner; every loser keeps its PENDING booking.
func TestConcurrentApprovals(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	start, end := window(1, 3)

	const n = 8
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		b := request(t, svc, fmt.Sprintf("req-%d", i), start, end)
		ids[i] = b.ID
	}

	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RespondToBooking(ids[i], providerID, models.DecisionApprove, nil)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case svcerr.CodeOf(err) == svcerr.CodeConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, n-1, conflicts)

	avail, err := svc.CheckAvailability(providerID, start, end)
	require.NoError(t, err)
	require.False(t, avail.Available)
	require.Len(t, avail.Conflicts, 1)
}
