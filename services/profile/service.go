package profile

import (
	"time"

	bookingRepo "wayfare/database/repository/booking"
	participantRepo "wayfare/database/repository/participant"
	profileRepo "wayfare/database/repository/profile"
	"wayfare/models"
	"wayfare/services/svcerr"
	"wayfare/services/trust"
	"wayfare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultProfileService implements ProfileService.
type DefaultProfileService struct {
	Repo         profileRepo.ProfileRepository
	Bookings     bookingRepo.BookingRepository
	Participants participantRepo.ParticipantRepository
	Gates        map[string]trust.Gate // keyed by vertical
	Cache        *Cache
}

func (s *DefaultProfileService) gateFor(vertical string) (trust.Gate, error) {
	gate, ok := s.Gates[vertical]
	if !ok {
		return trust.Gate{}, svcerr.Validation("unknown vertical %q", vertical)
	}
	return gate, nil
}

func (s *DefaultProfileService) checkGate(ownerID, vertical string) error {
	gate, err := s.gateFor(vertical)
	if err != nil {
		return err
	}
	rep, err := s.Participants.Trust(ownerID)
	if err != nil {
		if err == participantRepo.ErrNotFound {
			return svcerr.NotFound("participant %s not found", ownerID)
		}
		return err
	}
	if !gate.CanOperate(rep.Score, rep.Level) {
		return svcerr.NotEligible("reputation %d/%q does not meet the %s provider threshold", rep.Score, rep.Level, vertical)
	}
	return nil
}

func (s *DefaultProfileService) CreateProfile(ownerID string, input models.NewProfile) (*models.ProviderProfile, error) {
	if input.Descriptor.MaxPartySize < 1 {
		return nil, svcerr.Validation("maxPartySize must be at least 1")
	}
	if err := s.checkGate(ownerID, input.Vertical); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &models.ProviderProfile{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Vertical:   input.Vertical,
		IsEnabled:  false, // manual toggle after creation
		Descriptor: input.Descriptor,
		Stats:      models.RollingStats{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(profile); err != nil {
		if err == profileRepo.ErrExists {
			return nil, svcerr.AlreadyExists("a profile already exists for participant %s", ownerID)
		}
		return nil, err
	}

	utils.GetLogger().Info("provider profile created",
		zap.String("ownerID", ownerID), zap.String("vertical", input.Vertical))
	return profile, nil
}

func (s *DefaultProfileService) UpdateProfile(ownerID string, patch models.ProfilePatch) (*models.ProviderProfile, error) {
	if patch.MaxPartySize != nil && *patch.MaxPartySize < 1 {
		return nil, svcerr.Validation("maxPartySize must be at least 1")
	}

	updated, err := s.Repo.UpdateDescriptor(ownerID, patch)
	if err != nil {
		if err == profileRepo.ErrNotFound {
			return nil, svcerr.NotFound("no profile exists for participant %s", ownerID)
		}
		return nil, err
	}
	s.Cache.Invalidate(ownerID)
	return updated, nil
}

// SetEnabled re-runs the trust gate on enable only; reputation can regress
// after the profile was created. Disabling always succeeds.
func (s *DefaultProfileService) SetEnabled(ownerID string, enabled bool) (*models.ProviderProfile, error) {
	current, err := s.Repo.GetByOwner(ownerID)
	if err != nil {
		if err == profileRepo.ErrNotFound {
			return nil, svcerr.NotFound("no profile exists for participant %s", ownerID)
		}
		return nil, err
	}

	if enabled {
		if err := s.checkGate(ownerID, current.Vertical); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.SetEnabled(ownerID, enabled); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ownerID)

	current.IsEnabled = enabled
	return current, nil
}

func (s *DefaultProfileService) DeleteProfile(ownerID string) error {
	active, err := s.Bookings.HasNonTerminal(ownerID)
	if err != nil {
		return err
	}
	if active {
		return svcerr.HasActiveBookings("profile %s still has non-terminal bookings", ownerID)
	}

	if err := s.Repo.Delete(ownerID); err != nil {
		if err == profileRepo.ErrNotFound {
			return svcerr.NotFound("no profile exists for participant %s", ownerID)
		}
		return err
	}
	s.Cache.Invalidate(ownerID)
	return nil
}

func (s *DefaultProfileService) GetProfile(ownerID, viewerID string) (*models.ProviderProfile, error) {
	profile := s.Cache.Get(ownerID)
	if profile == nil {
		var err error
		profile, err = s.Repo.GetByOwner(ownerID)
		if err != nil {
			if err == profileRepo.ErrNotFound {
				return nil, svcerr.NotFound("no profile exists for participant %s", ownerID)
			}
			return nil, err
		}
		s.Cache.Set(profile)
	}

	if viewerID != ownerID {
		redacted := profile.Redacted()
		return &redacted, nil
	}
	return profile, nil
}
