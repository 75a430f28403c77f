package participantRepo

import (
	"errors"

	"wayfare/models"
)

// ErrExists is returned when the email is already registered.
var ErrExists = errors.New("participant already exists")

// ErrNotFound is returned when no participant matches.
var ErrNotFound = errors.New("participant not found")

// ParticipantRepository reads the slice of the account record the booking
// core needs: identity, credentials, reputation and device tokens. Profile
// editing and the social graph live elsewhere.
type ParticipantRepository interface {
	Create(participant *models.Participant) error
	GetByID(id string) (*models.Participant, error)
	GetByEmail(email string) (*models.Participant, error)
	Trust(id string) (models.Trust, error)
	DeviceTokens(id string) ([]string, error)
}
