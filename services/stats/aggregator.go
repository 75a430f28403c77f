// Package stats recomputes a provider's rolling response metrics. Always a
// full recompute from persisted bookings, never an incremental counter, so
// re-running it is safe and concurrent runs converge to the same answer.
package stats

import (
	"math"

	bookingRepo "wayfare/database/repository/booking"
	profileRepo "wayfare/database/repository/profile"
	"wayfare/models"
	"wayfare/services/profile"
)

// Aggregator recomputes response stats for one provider.
type Aggregator interface {
	Recompute(providerID string) (models.ResponseStats, error)
}

// DefaultAggregator implements Aggregator over the booking and profile
// repositories.
type DefaultAggregator struct {
	Bookings     bookingRepo.BookingRepository
	Profiles     profileRepo.ProfileRepository
	ProfileCache *profile.Cache
}

// Recompute derives response rate, mean response latency and the completed
// engagement count from every booking the provider has, then writes the
// result onto the profile.
func (a *DefaultAggregator) Recompute(providerID string) (models.ResponseStats, error) {
	bookings, err := a.Bookings.ListByProvider(providerID)
	if err != nil {
		return models.ResponseStats{}, err
	}

	stats := computeResponseStats(bookings)
	if err := a.Profiles.UpdateResponseStats(providerID, stats); err != nil {
		return models.ResponseStats{}, err
	}
	a.ProfileCache.Invalidate(providerID)
	return stats, nil
}

func computeResponseStats(bookings []models.Booking) models.ResponseStats {
	var responded, completed int
	var latencyHours float64
	for i := range bookings {
		b := &bookings[i]
		if b.RespondedAt != nil {
			responded++
			latencyHours += b.RespondedAt.Sub(b.RequestedAt).Hours()
		}
		if b.Status == models.StatusCompleted {
			completed++
		}
	}

	stats := models.ResponseStats{CompletedEngagements: completed}
	if len(bookings) > 0 {
		stats.ResponseRate = float64(responded) / float64(len(bookings)) * 100
	}
	if responded > 0 {
		// Whole hours only; sub-hour precision has no consumer yet.
		stats.AvgResponseLatencyHours = int(math.Round(latencyHours / float64(responded)))
	}
	return stats
}
