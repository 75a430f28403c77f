// Package auth registers participants and issues the tokens the booking
// API requires. Identity verification beyond a password check lives
// outside this service.
package auth

import (
	"time"

	participantRepo "wayfare/database/repository/participant"
	"wayfare/models"
	"wayfare/services/svcerr"
	"wayfare/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// AuthService covers participant sign-up and sign-in.
type AuthService interface {
	Register(name, email, password string) (*models.Participant, error)
	Authenticate(email, password string) (string, *models.Participant, error)
}

// DefaultAuthService implements AuthService.
type DefaultAuthService struct {
	Participants participantRepo.ParticipantRepository
}

func (s *DefaultAuthService) Register(name, email, password string) (*models.Participant, error) {
	if name == "" || email == "" {
		return nil, svcerr.Validation("name and email are required")
	}
	if len(password) < 8 {
		return nil, svcerr.Validation("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	participant := &models.Participant{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Trust:        models.Trust{Level: "new"},
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Participants.Create(participant); err != nil {
		if err == participantRepo.ErrExists {
			return nil, svcerr.AlreadyExists("an account already exists for %s", email)
		}
		return nil, err
	}
	return participant, nil
}

func (s *DefaultAuthService) Authenticate(email, password string) (string, *models.Participant, error) {
	participant, err := s.Participants.GetByEmail(email)
	if err != nil {
		if err == participantRepo.ErrNotFound {
			return "", nil, svcerr.Unauthorized("invalid email or password")
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(participant.PasswordHash), []byte(password)); err != nil {
		return "", nil, svcerr.Unauthorized("invalid email or password")
	}

	token, err := utils.GenerateToken(participant.ID, participant.Email, tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, participant, nil
}
