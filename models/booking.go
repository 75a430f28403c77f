package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending             BookingStatus = "PENDING"
	StatusDiscussing          BookingStatus = "DISCUSSING"
	StatusApproved            BookingStatus = "APPROVED"
	StatusInProgress          BookingStatus = "IN_PROGRESS"
	StatusCompleted           BookingStatus = "COMPLETED"
	StatusRejected            BookingStatus = "REJECTED"
	StatusCanceledByProvider  BookingStatus = "CANCELED_BY_PROVIDER"
	StatusCanceledByRequester BookingStatus = "CANCELED_BY_REQUESTER"
)

// Terminal reports whether no further transitions are possible.
func (s BookingStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCanceledByProvider, StatusCanceledByRequester:
		return true
	}
	return false
}

// BlockingStatuses are the states that reserve a provider's window. PENDING
// is deliberately absent: multiple requests may stack on one slot until the
// provider approves one.
var BlockingStatuses = []BookingStatus{StatusApproved, StatusInProgress, StatusDiscussing}

// AgreedTerms are fixed at approval and immutable after.
type AgreedTerms struct {
	PaymentMethod string  `bson:"paymentMethod" json:"paymentMethod"`
	Amount        float64 `bson:"amount" json:"amount"`
	Currency      string  `bson:"currency,omitempty" json:"currency,omitempty"`
	Instructions  string  `bson:"instructions,omitempty" json:"instructions,omitempty"` // meeting point / check-in notes
}

// Booking is a request for a provider's window. Both guide-style (single day
// with start/end times) and stay-style (check-in/check-out dates) requests
// reduce to the half-open interval [WindowStart, WindowEnd).
type Booking struct {
	ID          string        `bson:"id" json:"id"`
	Vertical    string        `bson:"vertical" json:"vertical"`
	ProviderID  string        `bson:"providerId" json:"providerId"`
	RequesterID string        `bson:"requesterId" json:"requesterId"`
	WindowStart time.Time     `bson:"windowStart" json:"windowStart"`
	WindowEnd   time.Time     `bson:"windowEnd" json:"windowEnd"`
	PartySize   int           `bson:"partySize" json:"partySize"`
	Note        string        `bson:"note,omitempty" json:"note,omitempty"`
	Status      BookingStatus `bson:"status" json:"status"`

	AgreedTerms  *AgreedTerms `bson:"agreedTerms,omitempty" json:"agreedTerms,omitempty"`
	CancelReason string       `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	CanceledBy   string       `bson:"canceledBy,omitempty" json:"canceledBy,omitempty"`

	// Each timestamp is set at most once, by its matching transition.
	RequestedAt time.Time  `bson:"requestedAt" json:"requestedAt"`
	RespondedAt *time.Time `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
	ApprovedAt  *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	StartedAt   *time.Time `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CancelledAt *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
}

// IsParty reports whether id is one of the two booking parties.
func (b *Booking) IsParty(id string) bool {
	return id == b.ProviderID || id == b.RequesterID
}

// Overlaps applies the half-open interval test against [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.WindowStart.Before(end) && b.WindowEnd.After(start)
}

// BookingSummary is the flat view returned by availability checks.
type BookingSummary struct {
	ID          string        `json:"id"`
	WindowStart time.Time     `json:"windowStart"`
	WindowEnd   time.Time     `json:"windowEnd"`
	Status      BookingStatus `json:"status"`
}

// Summary converts a booking to its availability-check view.
func (b *Booking) Summary() BookingSummary {
	return BookingSummary{
		ID:          b.ID,
		WindowStart: b.WindowStart,
		WindowEnd:   b.WindowEnd,
		Status:      b.Status,
	}
}

// AvailabilityResult is the outcome of a window conflict check.
type AvailabilityResult struct {
	Available bool             `json:"available"`
	Conflicts []BookingSummary `json:"conflicts"`
}

// BookingRequest is the input for creating a booking.
type BookingRequest struct {
	ProviderID  string    `json:"providerId"`
	RequesterID string    `json:"-"`
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`
	PartySize   int       `json:"partySize"`
	Note        string    `json:"note,omitempty"`
}

// Decision is the provider's answer to a pending booking.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionDiscuss Decision = "discuss"
)

// StateChange describes one transition for the repository to apply
// atomically with its source-state check.
type StateChange struct {
	Event string // for error messages, e.g. "cancel"
	From  []BookingStatus
	To    BookingStatus

	RespondedAt *time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CancelReason string
	CanceledBy   string
}
