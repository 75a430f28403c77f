package bookingRepo

import (
	"context"
	"errors"
	"time"

	"wayfare/models"
)

// ErrNotFound is returned when no booking exists with the given id.
var ErrNotFound = errors.New("booking not found")

// ErrStateMismatch is returned when a transition's source-state or
// write-once-timestamp guard does not hold.
var ErrStateMismatch = errors.New("booking not in an allowed state")

// ErrWindowConflict is returned by the approve transaction when a blocking
// booking overlaps the window.
var ErrWindowConflict = errors.New("window conflicts with an existing booking")

// BookingRepository persists bookings. Transition and Approve apply their
// guards atomically with the write: a guard that fails leaves the stored
// booking untouched.
type BookingRepository interface {
	Insert(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)

	// FindBlocking returns bookings for the provider in a blocking status
	// whose window overlaps [start, end), excluding excludeID.
	FindBlocking(providerID string, start, end time.Time, excludeID string) ([]models.Booking, error)

	// Transition applies one state change guarded by its source states and
	// unset target timestamps, returning the updated booking.
	Transition(id string, change models.StateChange) (*models.Booking, error)

	// Approve re-checks window conflicts and flips the booking to APPROVED
	// in one transactional unit. respondedAt is set only if still unset.
	Approve(ctx context.Context, id string, terms *models.AgreedTerms, now time.Time) (*models.Booking, error)

	ListByProvider(providerID string) ([]models.Booking, error)
	ListByRequester(requesterID string) ([]models.Booking, error)
	HasNonTerminal(providerID string) (bool, error)
}
