package booking

import (
	"time"

	"wayfare/models"
	"wayfare/services/svcerr"
)

// CheckAvailability reports whether [start, end) is free of blocking
// bookings for the provider. PENDING requests do not block: several may
// stack on one slot until the provider approves one. The check never
// mutates state; approval re-runs it inside its own transaction, so a
// clean answer here is advisory, not a reservation.
func (s *DefaultBookingService) CheckAvailability(providerID string, start, end time.Time) (*models.AvailabilityResult, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	blocking, err := s.Repo.FindBlocking(providerID, start, end, "")
	if err != nil {
		return nil, err
	}

	result := &models.AvailabilityResult{
		Available: len(blocking) == 0,
		Conflicts: make([]models.BookingSummary, 0, len(blocking)),
	}
	for i := range blocking {
		result.Conflicts = append(result.Conflicts, blocking[i].Summary())
	}
	return result, nil
}

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return svcerr.Validation("window start and end are required")
	}
	if !start.Before(end) {
		return svcerr.Validation("window start must be before window end")
	}
	return nil
}
