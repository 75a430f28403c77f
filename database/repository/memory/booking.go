package memory

import (
	"context"
	"sync"
	"time"

	bookingRepo "wayfare/database/repository/booking"
	"wayfare/models"
)

// BookingRepo is the in-memory BookingRepository.
type BookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

// NewBookingRepo creates an empty in-memory booking store.
func NewBookingRepo() *BookingRepo {
	return &BookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *BookingRepo) Insert(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (r *BookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return cloneBooking(b), nil
}

// Seed stores a booking directly, for tests that need arbitrary state.
func (r *BookingRepo) Seed(booking models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.ID] = cloneBooking(&booking)
}

func (r *BookingRepo) blocking(providerID string, start, end time.Time, excludeID string) []models.Booking {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID != providerID || b.ID == excludeID {
			continue
		}
		isBlocking := false
		for _, s := range models.BlockingStatuses {
			if b.Status == s {
				isBlocking = true
				break
			}
		}
		if isBlocking && b.Overlaps(start, end) {
			out = append(out, *cloneBooking(b))
		}
	}
	return out
}

func (r *BookingRepo) FindBlocking(providerID string, start, end time.Time, excludeID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blocking(providerID, start, end, excludeID), nil
}

func (r *BookingRepo) Transition(id string, change models.StateChange) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transitionLocked(id, change)
}

func (r *BookingRepo) transitionLocked(id string, change models.StateChange) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}

	allowed := false
	for _, from := range change.From {
		if b.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, bookingRepo.ErrStateMismatch
	}
	// Write-once timestamp guards.
	if change.StartedAt != nil && b.StartedAt != nil {
		return nil, bookingRepo.ErrStateMismatch
	}
	if change.CompletedAt != nil && b.CompletedAt != nil {
		return nil, bookingRepo.ErrStateMismatch
	}
	if change.CancelledAt != nil && b.CancelledAt != nil {
		return nil, bookingRepo.ErrStateMismatch
	}

	b.Status = change.To
	if change.RespondedAt != nil && b.RespondedAt == nil {
		b.RespondedAt = change.RespondedAt
	}
	if change.StartedAt != nil {
		b.StartedAt = change.StartedAt
	}
	if change.CompletedAt != nil {
		b.CompletedAt = change.CompletedAt
	}
	if change.CancelledAt != nil {
		b.CancelledAt = change.CancelledAt
	}
	if change.CancelReason != "" {
		b.CancelReason = change.CancelReason
	}
	if change.CanceledBy != "" {
		b.CanceledBy = change.CanceledBy
	}
	return cloneBooking(b), nil
}

// Approve mirrors the mongo transaction: the conflict re-check and the
// status flip happen under one lock, so overlapping approvals serialize.
func (r *BookingRepo) Approve(ctx context.Context, id string, terms *models.AgreedTerms, now time.Time) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	if b.Status != models.StatusPending && b.Status != models.StatusDiscussing {
		return nil, bookingRepo.ErrStateMismatch
	}
	if b.ApprovedAt != nil {
		return nil, bookingRepo.ErrStateMismatch
	}
	if len(r.blocking(b.ProviderID, b.WindowStart, b.WindowEnd, id)) > 0 {
		return nil, bookingRepo.ErrWindowConflict
	}

	b.Status = models.StatusApproved
	b.ApprovedAt = &now
	if b.RespondedAt == nil {
		b.RespondedAt = &now
	}
	if terms != nil {
		t := *terms
		b.AgreedTerms = &t
	}
	return cloneBooking(b), nil
}

func (r *BookingRepo) ListByProvider(providerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID {
			out = append(out, *cloneBooking(b))
		}
	}
	sortByRequestedAtDesc(out)
	return out, nil
}

func (r *BookingRepo) ListByRequester(requesterID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.RequesterID == requesterID {
			out = append(out, *cloneBooking(b))
		}
	}
	sortByRequestedAtDesc(out)
	return out, nil
}

func (r *BookingRepo) HasNonTerminal(providerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ProviderID == providerID && !b.Status.Terminal() {
			return true, nil
		}
	}
	return false, nil
}
