package booking

import (
	"time"

	bookingRepo "wayfare/database/repository/booking"
	profileRepo "wayfare/database/repository/profile"
	"wayfare/models"
	"wayfare/services/notification"
	"wayfare/services/stats"

	"github.com/hibiken/asynq"
)

// BookingService owns the booking lifecycle for both verticals.
type BookingService interface {
	CheckAvailability(providerID string, start, end time.Time) (*models.AvailabilityResult, error)
	RequestBooking(input models.BookingRequest) (*models.Booking, error)
	RespondToBooking(bookingID, actorID string, decision models.Decision, terms *models.AgreedTerms) (*models.Booking, error)
	CancelBooking(bookingID, actorID, reason string) (*models.Booking, error)
	StartEngagement(bookingID, actorID string) (*models.Booking, error)
	CompleteEngagement(bookingID, actorID string) (*models.Booking, error)

	GetBooking(bookingID, viewerID string) (*models.Booking, error)
	ListForProvider(providerID, viewerID string) ([]models.Booking, error)
	ListForRequester(requesterID string) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Profiles profileRepo.ProfileRepository
	Stats    stats.Aggregator
	Notifier notification.Dispatcher
	Queue    *asynq.Client // optional; retries stat recomputes that failed inline
	Policies map[string]VerticalPolicy

	locks *providerLocks
}

// NewDefaultBookingService wires the engine with the default policy set.
func NewDefaultBookingService(
	repo bookingRepo.BookingRepository,
	profiles profileRepo.ProfileRepository,
	aggregator stats.Aggregator,
	notifier notification.Dispatcher,
	queue *asynq.Client,
) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:     repo,
		Profiles: profiles,
		Stats:    aggregator,
		Notifier: notifier,
		Queue:    queue,
		Policies: DefaultPolicies(),
		locks:    newProviderLocks(),
	}
}
