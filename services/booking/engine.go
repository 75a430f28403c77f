package booking

import (
	"context"
	"time"

	bookingRepo "wayfare/database/repository/booking"
	profileRepo "wayfare/database/repository/profile"
	"wayfare/models"
	"wayfare/services/svcerr"
	"wayfare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) policyFor(vertical string) VerticalPolicy {
	if p, ok := s.Policies[vertical]; ok {
		return p
	}
	return TourPolicy()
}

// RequestBooking creates a PENDING booking against an enabled profile.
func (s *DefaultBookingService) RequestBooking(input models.BookingRequest) (*models.Booking, error) {
	if input.ProviderID == input.RequesterID {
		return nil, svcerr.Validation("you cannot book your own services")
	}
	if err := validateWindow(input.WindowStart, input.WindowEnd); err != nil {
		return nil, err
	}
	if input.WindowStart.Before(time.Now()) {
		return nil, svcerr.Validation("window must not be in the past")
	}
	if input.PartySize < 1 {
		return nil, svcerr.Validation("party size must be at least 1")
	}

	profile, err := s.Profiles.GetByOwner(input.ProviderID)
	if err != nil {
		if err == profileRepo.ErrNotFound {
			return nil, svcerr.NotFound("provider %s has no profile", input.ProviderID)
		}
		return nil, err
	}
	policy := s.policyFor(profile.Vertical)
	if !profile.IsEnabled {
		return nil, svcerr.NotEligible("provider is not currently accepting bookings")
	}
	if input.PartySize > profile.Descriptor.MaxPartySize {
		return nil, svcerr.Validation("%s %d exceeds the provider's maximum of %d",
			policy.CapacityNoun, input.PartySize, profile.Descriptor.MaxPartySize)
	}

	booking := &models.Booking{
		ID:          uuid.New().String(),
		Vertical:    profile.Vertical,
		ProviderID:  input.ProviderID,
		RequesterID: input.RequesterID,
		WindowStart: input.WindowStart,
		WindowEnd:   input.WindowEnd,
		PartySize:   input.PartySize,
		Note:        input.Note,
		Status:      models.StatusPending,
		RequestedAt: time.Now().UTC(),
	}
	if err := s.Repo.Insert(booking); err != nil {
		return nil, err
	}

	s.notify(booking.ProviderID, models.EventBookingRequested, booking)
	return booking, nil
}

// RespondToBooking is the provider's answer to a PENDING or DISCUSSING
// request. Approval re-checks window conflicts atomically with the status
// write; respondedAt is recorded on the first response only.
func (s *DefaultBookingService) RespondToBooking(bookingID, actorID string, decision models.Decision, terms *models.AgreedTerms) (*models.Booking, error) {
	current, err := s.getOwn(bookingID, actorID)
	if err != nil {
		return nil, err
	}
	if actorID != current.ProviderID {
		return nil, svcerr.Unauthorized("only the provider may respond to a booking")
	}

	now := time.Now().UTC()
	var updated *models.Booking

	switch decision {
	case models.DecisionApprove:
		// Per-provider lock brackets the transactional check-then-act so
		// local contenders queue instead of aborting each other.
		unlock := s.locks.lock(current.ProviderID)
		defer unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		updated, err = s.Repo.Approve(ctx, bookingID, terms, now)

	case models.DecisionReject:
		updated, err = s.Repo.Transition(bookingID, models.StateChange{
			Event:       "reject",
			From:        []models.BookingStatus{models.StatusPending, models.StatusDiscussing},
			To:          models.StatusRejected,
			RespondedAt: &now,
		})

	case models.DecisionDiscuss:
		updated, err = s.Repo.Transition(bookingID, models.StateChange{
			Event:       "discuss",
			From:        []models.BookingStatus{models.StatusPending},
			To:          models.StatusDiscussing,
			RespondedAt: &now,
		})

	default:
		return nil, svcerr.Validation("unknown decision %q", decision)
	}

	if err != nil {
		return nil, s.mapTransitionErr(err, string(decision), current)
	}

	s.recomputeStats(current.ProviderID)

	switch decision {
	case models.DecisionApprove:
		s.notify(updated.RequesterID, models.EventBookingApproved, updated)
	case models.DecisionReject:
		s.notify(updated.RequesterID, models.EventBookingRejected, updated)
	case models.DecisionDiscuss:
		s.notify(updated.RequesterID, models.EventBookingDiscussing, updated)
	}
	return updated, nil
}

// CancelBooking ends a non-terminal booking. Either party may cancel; the
// status records who did.
func (s *DefaultBookingService) CancelBooking(bookingID, actorID, reason string) (*models.Booking, error) {
	current, err := s.getOwn(bookingID, actorID)
	if err != nil {
		return nil, err
	}

	to := models.StatusCanceledByRequester
	if actorID == current.ProviderID {
		to = models.StatusCanceledByProvider
	}

	now := time.Now().UTC()
	updated, err := s.Repo.Transition(bookingID, models.StateChange{
		Event:        "cancel",
		From:         []models.BookingStatus{models.StatusPending, models.StatusDiscussing, models.StatusApproved},
		To:           to,
		CancelledAt:  &now,
		CancelReason: reason,
		CanceledBy:   actorID,
	})
	if err != nil {
		return nil, s.mapTransitionErr(err, "cancel", current)
	}

	s.notify(otherParty(updated, actorID), models.EventBookingCanceled, updated)
	return updated, nil
}

// StartEngagement moves an APPROVED booking into its active session
// (in-progress for tours, checked-in for stays).
func (s *DefaultBookingService) StartEngagement(bookingID, actorID string) (*models.Booking, error) {
	current, err := s.getOwn(bookingID, actorID)
	if err != nil {
		return nil, err
	}
	policy := s.policyFor(current.Vertical)
	if actorID != current.ProviderID {
		return nil, svcerr.Unauthorized("only the provider may %s a booking", policy.StartVerb)
	}

	now := time.Now().UTC()
	updated, err := s.Repo.Transition(bookingID, models.StateChange{
		Event:     policy.StartVerb,
		From:      []models.BookingStatus{models.StatusApproved},
		To:        models.StatusInProgress,
		StartedAt: &now,
	})
	if err != nil {
		return nil, s.mapTransitionErr(err, policy.StartVerb, current)
	}

	s.notify(updated.RequesterID, models.EventBookingStarted, updated)
	return updated, nil
}

// CompleteEngagement ends the active session. COMPLETED is terminal and
// unlocks review eligibility for both parties.
func (s *DefaultBookingService) CompleteEngagement(bookingID, actorID string) (*models.Booking, error) {
	current, err := s.getOwn(bookingID, actorID)
	if err != nil {
		return nil, err
	}
	policy := s.policyFor(current.Vertical)
	if actorID != current.ProviderID {
		return nil, svcerr.Unauthorized("only the provider may %s a booking", policy.CompleteVerb)
	}

	now := time.Now().UTC()
	updated, err := s.Repo.Transition(bookingID, models.StateChange{
		Event:       policy.CompleteVerb,
		From:        []models.BookingStatus{models.StatusInProgress},
		To:          models.StatusCompleted,
		CompletedAt: &now,
	})
	if err != nil {
		return nil, s.mapTransitionErr(err, policy.CompleteVerb, current)
	}

	s.recomputeStats(current.ProviderID)
	s.notify(updated.RequesterID, models.EventBookingCompleted, updated)
	s.notify(updated.ProviderID, models.EventBookingCompleted, updated)
	return updated, nil
}

func (s *DefaultBookingService) GetBooking(bookingID, viewerID string) (*models.Booking, error) {
	return s.getOwn(bookingID, viewerID)
}

func (s *DefaultBookingService) ListForProvider(providerID, viewerID string) ([]models.Booking, error) {
	if providerID != viewerID {
		return nil, svcerr.Unauthorized("only the provider may list their bookings")
	}
	return s.Repo.ListByProvider(providerID)
}

func (s *DefaultBookingService) ListForRequester(requesterID string) ([]models.Booking, error) {
	return s.Repo.ListByRequester(requesterID)
}

// getOwn loads a booking and verifies the actor is a party to it.
func (s *DefaultBookingService) getOwn(bookingID, actorID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(bookingID)
	if err != nil {
		if err == bookingRepo.ErrNotFound {
			return nil, svcerr.NotFound("booking %s not found", bookingID)
		}
		return nil, err
	}
	if !booking.IsParty(actorID) {
		return nil, svcerr.Unauthorized("participant %s is not a party to this booking", actorID)
	}
	return booking, nil
}

func (s *DefaultBookingService) mapTransitionErr(err error, event string, current *models.Booking) error {
	switch err {
	case bookingRepo.ErrWindowConflict:
		return svcerr.Conflict("the requested window is no longer available")
	case bookingRepo.ErrStateMismatch:
		return svcerr.InvalidState("cannot %s booking %s in status %s", event, current.ID, current.Status)
	case bookingRepo.ErrNotFound:
		return svcerr.NotFound("booking %s not found", current.ID)
	}
	return err
}

func otherParty(b *models.Booking, actorID string) string {
	if actorID == b.ProviderID {
		return b.RequesterID
	}
	return b.ProviderID
}

// recomputeStats runs the full recompute inline; on failure it logs and
// hands the provider to the queue so a worker retries. The transition has
// already committed and is never rolled back here.
func (s *DefaultBookingService) recomputeStats(providerID string) {
	if s.Stats == nil {
		return
	}
	if _, err := s.Stats.Recompute(providerID); err != nil {
		utils.GetLogger().Error("failed to recompute provider stats",
			zap.String("providerID", providerID), zap.Error(err))
		s.enqueueRecompute(providerID)
	}
}
