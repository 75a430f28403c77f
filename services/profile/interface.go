package profile

import "wayfare/models"

// ProfileService owns the provider-profile lifecycle. Creation and every
// enable toggle pass the vertical's trust gate; rolling stats are written
// only by the aggregators, never through here.
type ProfileService interface {
	CreateProfile(ownerID string, input models.NewProfile) (*models.ProviderProfile, error)
	UpdateProfile(ownerID string, patch models.ProfilePatch) (*models.ProviderProfile, error)
	SetEnabled(ownerID string, enabled bool) (*models.ProviderProfile, error)
	DeleteProfile(ownerID string) error

	// GetProfile redacts address and exact location unless viewerID is the
	// owner.
	GetProfile(ownerID, viewerID string) (*models.ProviderProfile, error)
}
