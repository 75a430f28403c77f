package models

import "time"

// PaymentOffer is a payment preference a provider advertises. The service
// records the agreed method on approval; it never moves money.
type PaymentOffer struct {
	Method   string `bson:"method" json:"method"`     // e.g. "cash", "card"
	Currency string `bson:"currency" json:"currency"` // e.g. "EUR"
	Details  string `bson:"details,omitempty" json:"details,omitempty"`
}

// ServiceDescriptor holds the capability fields a provider edits. Opaque to
// the booking core except MaxPartySize.
type ServiceDescriptor struct {
	DisplayName       string         `bson:"displayName" json:"displayName"`
	Bio               string         `bson:"bio,omitempty" json:"bio,omitempty"`
	ServiceCategories []string       `bson:"serviceCategories,omitempty" json:"serviceCategories,omitempty"`
	Languages         []string       `bson:"languages,omitempty" json:"languages,omitempty"`
	MaxPartySize      int            `bson:"maxPartySize" json:"maxPartySize"`
	City              string         `bson:"city,omitempty" json:"city,omitempty"`
	Address           string         `bson:"address,omitempty" json:"address,omitempty"`
	LocationGeo       *GeoPoint      `bson:"locationGeo,omitempty" json:"locationGeo,omitempty"`
	PaymentOffers     []PaymentOffer `bson:"paymentOffers,omitempty" json:"paymentOffers,omitempty"`
}

// RollingStats are derived fields recomputed from booking and review history.
// They are never settable through profile updates.
type RollingStats struct {
	ResponseRate            float64 `bson:"responseRate" json:"responseRate"`                       // 0-100
	AvgResponseLatencyHours int     `bson:"avgResponseLatencyHours" json:"avgResponseLatencyHours"` // whole hours
	CompletedEngagements    int     `bson:"completedEngagements" json:"completedEngagements"`
	Rating                  float64 `bson:"rating" json:"rating"` // 0-5, mean of public reviews
	ReviewCount             int     `bson:"reviewCount" json:"reviewCount"`
}

// ResponseStats is the subset recomputed from bookings alone.
type ResponseStats struct {
	ResponseRate            float64 `bson:"responseRate" json:"responseRate"`
	AvgResponseLatencyHours int     `bson:"avgResponseLatencyHours" json:"avgResponseLatencyHours"`
	CompletedEngagements    int     `bson:"completedEngagements" json:"completedEngagements"`
}

// ProviderProfile is the bookable face of a participant. One per owner.
type ProviderProfile struct {
	ID         string            `bson:"id" json:"id"`
	OwnerID    string            `bson:"ownerId" json:"ownerId"`
	Vertical   string            `bson:"vertical" json:"vertical"` // "tour" or "stay"
	IsEnabled  bool              `bson:"isEnabled" json:"isEnabled"`
	Descriptor ServiceDescriptor `bson:"descriptor" json:"descriptor"`
	Stats      RollingStats      `bson:"stats" json:"stats"`
	CreatedAt  time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Redacted returns a copy with exact-location fields stripped for non-owners.
func (p ProviderProfile) Redacted() ProviderProfile {
	p.Descriptor.Address = ""
	p.Descriptor.LocationGeo = nil
	return p
}

// NewProfile is the input for creating a provider profile.
type NewProfile struct {
	Vertical   string            `json:"vertical" binding:"required"`
	Descriptor ServiceDescriptor `json:"descriptor"`
}

// ProfilePatch is a partial descriptor update; nil fields are left unchanged.
type ProfilePatch struct {
	DisplayName       *string        `json:"displayName,omitempty"`
	Bio               *string        `json:"bio,omitempty"`
	ServiceCategories []string       `json:"serviceCategories,omitempty"`
	Languages         []string       `json:"languages,omitempty"`
	MaxPartySize      *int           `json:"maxPartySize,omitempty"`
	City              *string        `json:"city,omitempty"`
	Address           *string        `json:"address,omitempty"`
	LocationGeo       *GeoPoint      `json:"locationGeo,omitempty"`
	PaymentOffers     []PaymentOffer `json:"paymentOffers,omitempty"`
}
