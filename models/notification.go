package models

// EventKind identifies a lifecycle event for notification payloads.
type EventKind string

const (
	EventBookingRequested  EventKind = "booking.requested"
	EventBookingDiscussing EventKind = "booking.discussing"
	EventBookingApproved   EventKind = "booking.approved"
	EventBookingRejected   EventKind = "booking.rejected"
	EventBookingCanceled   EventKind = "booking.canceled"
	EventBookingStarted    EventKind = "booking.started"
	EventBookingCompleted  EventKind = "booking.completed"
	EventReviewReceived    EventKind = "review.received"
)
