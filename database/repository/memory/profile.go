package memory

import (
	"sync"
	"time"

	profileRepo "wayfare/database/repository/profile"
	"wayfare/models"
)

// ProfileRepo is the in-memory ProfileRepository.
type ProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.ProviderProfile // keyed by owner id
}

// NewProfileRepo creates an empty in-memory profile store.
func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: make(map[string]*models.ProviderProfile)}
}

func (r *ProfileRepo) Create(profile *models.ProviderProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.OwnerID]; ok {
		return profileRepo.ErrExists
	}
	r.profiles[profile.OwnerID] = cloneProfile(profile)
	return nil
}

func (r *ProfileRepo) GetByOwner(ownerID string) (*models.ProviderProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, profileRepo.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r *ProfileRepo) UpdateDescriptor(ownerID string, patch models.ProfilePatch) (*models.ProviderProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, profileRepo.ErrNotFound
	}

	if patch.DisplayName != nil {
		p.Descriptor.DisplayName = *patch.DisplayName
	}
	if patch.Bio != nil {
		p.Descriptor.Bio = *patch.Bio
	}
	if patch.ServiceCategories != nil {
		p.Descriptor.ServiceCategories = patch.ServiceCategories
	}
	if patch.Languages != nil {
		p.Descriptor.Languages = patch.Languages
	}
	if patch.MaxPartySize != nil {
		p.Descriptor.MaxPartySize = *patch.MaxPartySize
	}
	if patch.City != nil {
		p.Descriptor.City = *patch.City
	}
	if patch.Address != nil {
		p.Descriptor.Address = *patch.Address
	}
	if patch.LocationGeo != nil {
		p.Descriptor.LocationGeo = patch.LocationGeo
	}
	if patch.PaymentOffers != nil {
		p.Descriptor.PaymentOffers = patch.PaymentOffers
	}
	p.UpdatedAt = time.Now().UTC()
	return cloneProfile(p), nil
}

func (r *ProfileRepo) SetEnabled(ownerID string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[ownerID]
	if !ok {
		return profileRepo.ErrNotFound
	}
	p.IsEnabled = enabled
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *ProfileRepo) UpdateResponseStats(ownerID string, stats models.ResponseStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[ownerID]
	if !ok {
		return profileRepo.ErrNotFound
	}
	p.Stats.ResponseRate = stats.ResponseRate
	p.Stats.AvgResponseLatencyHours = stats.AvgResponseLatencyHours
	p.Stats.CompletedEngagements = stats.CompletedEngagements
	return nil
}

func (r *ProfileRepo) UpdateRating(ownerID string, rating float64, reviewCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[ownerID]
	if !ok {
		return profileRepo.ErrNotFound
	}
	p.Stats.Rating = rating
	p.Stats.ReviewCount = reviewCount
	return nil
}

func (r *ProfileRepo) Delete(ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[ownerID]; !ok {
		return profileRepo.ErrNotFound
	}
	delete(r.profiles, ownerID)
	return nil
}
