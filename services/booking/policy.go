package booking

import "wayfare/models"

// VerticalPolicy parameterizes the shared engine per vertical: terminology
// only, never state semantics. Guided tours and home stays run the same
// lifecycle; the policy keeps validation wording and event phrasing apart
// so the two verticals cannot drift.
type VerticalPolicy struct {
	Vertical     string
	CapacityNoun string // e.g. "party size", "guest count"
	StartVerb    string // e.g. "start", "check-in"
	CompleteVerb string // e.g. "complete", "check-out"
}

// TourPolicy covers guided-tour bookings: single date with start/end times.
func TourPolicy() VerticalPolicy {
	return VerticalPolicy{
		Vertical:     models.VerticalTour,
		CapacityNoun: "party size",
		StartVerb:    "start",
		CompleteVerb: "complete",
	}
}

// StayPolicy covers home-stay bookings: a check-in/check-out date range.
func StayPolicy() VerticalPolicy {
	return VerticalPolicy{
		Vertical:     models.VerticalStay,
		CapacityNoun: "guest count",
		StartVerb:    "check-in",
		CompleteVerb: "check-out",
	}
}

// DefaultPolicies returns the policy set for both verticals.
func DefaultPolicies() map[string]VerticalPolicy {
	return map[string]VerticalPolicy{
		models.VerticalTour: TourPolicy(),
		models.VerticalStay: StayPolicy(),
	}
}
