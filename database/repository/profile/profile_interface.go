package profileRepo

import (
	"errors"

	"wayfare/models"
)

// ErrExists is returned when the owner already has a profile.
var ErrExists = errors.New("profile already exists for owner")

// ErrNotFound is returned when no profile exists for the owner.
var ErrNotFound = errors.New("profile not found")

// ProfileRepository persists provider profiles. One document per owner,
// enforced by a unique index.
type ProfileRepository interface {
	Create(profile *models.ProviderProfile) error
	GetByOwner(ownerID string) (*models.ProviderProfile, error)
	UpdateDescriptor(ownerID string, patch models.ProfilePatch) (*models.ProviderProfile, error)
	SetEnabled(ownerID string, enabled bool) error
	UpdateResponseStats(ownerID string, stats models.ResponseStats) error
	UpdateRating(ownerID string, rating float64, reviewCount int) error
	Delete(ownerID string) error
}
