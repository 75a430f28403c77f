// Package memory holds in-memory repository implementations. They honor
// the same guard semantics as the mongo repositories, including holding a
// lock across approve's check-then-act, and back the service tests and
// local development runs.
package memory

import (
	"sort"

	"wayfare/models"
)

func cloneBooking(b *models.Booking) *models.Booking {
	c := *b
	if b.AgreedTerms != nil {
		terms := *b.AgreedTerms
		c.AgreedTerms = &terms
	}
	return &c
}

func cloneProfile(p *models.ProviderProfile) *models.ProviderProfile {
	c := *p
	return &c
}

func sortByRequestedAtDesc(bookings []models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].RequestedAt.After(bookings[j].RequestedAt)
	})
}
